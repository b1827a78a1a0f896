package tui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// DefaultFrameInterval is the spinner redraw interval of an animated Progress
const DefaultFrameInterval = 100 * time.Millisecond

// ProgressReporter receives per-page updates from a batch run
type ProgressReporter interface {
	AddTask(id, name string)
	StartTask(id string)
	CompleteTask(id, detail string)
	FailTask(id string, err error)
	SkipTask(id, reason string)
}

type NopProgressReporter struct{}

func (n *NopProgressReporter) AddTask(id, name string)        {}
func (n *NopProgressReporter) StartTask(id string)            {}
func (n *NopProgressReporter) CompleteTask(id, detail string) {}
func (n *NopProgressReporter) FailTask(id string, err error)  {}
func (n *NopProgressReporter) SkipTask(id, reason string)     {}

type TaskStatus int

const (
	TaskPending TaskStatus = iota
	TaskRunning
	TaskSuccess
	TaskError
	TaskSkipped
)

func (s TaskStatus) String() string {
	switch s {
	case TaskRunning:
		return "running"
	case TaskSuccess:
		return "done"
	case TaskError:
		return "failed"
	case TaskSkipped:
		return "skipped"
	default:
		return "waiting"
	}
}

type Task struct {
	ID        string
	Name      string
	Detail    string // output path on success, reason when skipped
	Status    TaskStatus
	Error     error
	StartTime time.Time
	EndTime   time.Time
}

// Summary counts tasks by outcome
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Skipped   int
}

// Partial reports a run where some tasks failed and some succeeded
func (s Summary) Partial() bool {
	return s.Failed > 0 && s.Succeeded > 0
}

// Progress renders a live task list for a batch run. With a zero frame
// interval nothing is redrawn: the final task list is printed once on Stop,
// so output to a file or pipe carries no cursor escapes.
type Progress struct {
	mu       sync.Mutex
	writer   io.Writer
	title    string
	tasks    []*Task
	taskMap  map[string]*Task
	frame    int
	interval time.Duration
	drawn    int
	done     chan struct{}
	wg       sync.WaitGroup
	started  bool
	stopped  bool
}

func NewProgress(title string) *Progress {
	return &Progress{
		title:    title,
		tasks:    make([]*Task, 0),
		taskMap:  make(map[string]*Task),
		interval: DefaultFrameInterval,
		done:     make(chan struct{}),
	}
}

func (p *Progress) SetWriter(w io.Writer) {
	p.writer = w
}

// SetInterval changes the redraw interval; zero disables animation
func (p *Progress) SetInterval(d time.Duration) {
	p.interval = d
}

func (p *Progress) getWriter() io.Writer {
	if p.writer == nil {
		return os.Stdout
	}
	return p.writer
}

// AddTask registers a task; a duplicate id is ignored
func (p *Progress) AddTask(id, name string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.taskMap[id]; exists {
		return
	}
	task := &Task{ID: id, Name: name, Status: TaskPending}
	p.tasks = append(p.tasks, task)
	p.taskMap[id] = task
}

func (p *Progress) StartTask(id string) {
	p.update(id, func(t *Task) {
		t.Status = TaskRunning
		t.StartTime = time.Now()
	})
}

func (p *Progress) CompleteTask(id, detail string) {
	p.update(id, func(t *Task) {
		t.Status = TaskSuccess
		t.Detail = detail
		t.EndTime = time.Now()
	})
}

func (p *Progress) FailTask(id string, err error) {
	p.update(id, func(t *Task) {
		t.Status = TaskError
		t.Error = err
		t.EndTime = time.Now()
	})
}

func (p *Progress) SkipTask(id, reason string) {
	p.update(id, func(t *Task) {
		t.Status = TaskSkipped
		t.Detail = reason
	})
}

func (p *Progress) update(id string, fn func(*Task)) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if task, ok := p.taskMap[id]; ok {
		fn(task)
	}
}

// Tasks returns a snapshot of the tasks in registration order
func (p *Progress) Tasks() []Task {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Task, len(p.tasks))
	for i, t := range p.tasks {
		out[i] = *t
	}
	return out
}

func (p *Progress) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return
	}
	p.started = true

	w := p.getWriter()
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, StyleTitle.Render(p.title))
	_, _ = fmt.Fprintln(w)

	if p.interval > 0 {
		p.draw()
		p.wg.Add(1)
		go p.animate()
	}
}

func (p *Progress) animate() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-p.done:
			return
		case <-ticker.C:
			p.mu.Lock()
			p.frame = (p.frame + 1) % len(SpinnerFrames)
			p.redraw()
			p.mu.Unlock()
		}
	}
}

// draw prints every task line; caller holds p.mu
func (p *Progress) draw() {
	w := p.getWriter()
	for _, task := range p.tasks {
		_, _ = fmt.Fprintln(w, p.formatTaskLine(task))
	}
	p.drawn = len(p.tasks)
}

// redraw moves the cursor over the previous frame and draws again; caller holds p.mu
func (p *Progress) redraw() {
	if p.drawn > 0 {
		_, _ = fmt.Fprint(p.getWriter(), strings.Repeat("\033[A\033[2K", p.drawn))
	}
	p.draw()
}

func (p *Progress) formatTaskLine(task *Task) string {
	var line string
	switch task.Status {
	case TaskPending:
		line = StyleMuted.Render(fmt.Sprintf("%s %s %s", IconPending, task.Name, task.Status))
	case TaskRunning:
		elapsed := time.Since(task.StartTime).Round(time.Second)
		line = StyleRunning.Render(fmt.Sprintf("%s %s %s %s", SpinnerFrames[p.frame], task.Name, task.Status, elapsed))
	case TaskSuccess:
		duration := task.EndTime.Sub(task.StartTime).Round(time.Millisecond)
		line = StyleSuccess.Render(fmt.Sprintf("%s %s %s %s", IconSuccess, task.Name, task.Status, duration))
		if task.Detail != "" {
			line += " " + StyleMuted.Render(IconArrow+" "+task.Detail)
		}
	case TaskError:
		line = StyleError.Render(fmt.Sprintf("%s %s %s", IconError, task.Name, task.Status))
	case TaskSkipped:
		line = StyleMuted.Render(fmt.Sprintf("%s %s %s", IconPending, task.Name, task.Status))
		if task.Detail != "" {
			line += " " + StyleMuted.Render("("+task.Detail+")")
		}
	}
	return "  " + line
}

// Stop halts the animation and draws the final state once
func (p *Progress) Stop() {
	p.mu.Lock()
	if !p.started || p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.done)
	p.mu.Unlock()

	p.wg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.interval > 0 {
		p.redraw()
	} else {
		p.draw()
	}
}

// Summary counts the tasks by outcome
func (p *Progress) Summary() Summary {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.summary()
}

func (p *Progress) summary() Summary {
	s := Summary{Total: len(p.tasks)}
	for _, t := range p.tasks {
		switch t.Status {
		case TaskSuccess:
			s.Succeeded++
		case TaskError:
			s.Failed++
		case TaskSkipped:
			s.Skipped++
		}
	}
	return s
}

func (p *Progress) PrintSummary() {
	p.mu.Lock()
	defer p.mu.Unlock()

	w := p.getWriter()
	s := p.summary()

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, StyleMuted.Render(strings.Repeat("─", 50)))

	text := fmt.Sprintf("Completed: %d/%d", s.Succeeded, s.Total-s.Skipped)
	if s.Failed > 0 {
		text += fmt.Sprintf(", Failed: %d", s.Failed)
	}
	if s.Skipped > 0 {
		text += fmt.Sprintf(", Skipped: %d", s.Skipped)
	}

	if s.Failed == 0 {
		_, _ = fmt.Fprintln(w, StyleSuccess.Render(IconSuccess+" "+text))
		_, _ = fmt.Fprintln(w)
		return
	}

	_, _ = fmt.Fprintln(w, StyleWarning.Render(IconError+" "+text))
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, StyleError.Render("Failed:"))
	for _, t := range p.tasks {
		if t.Status == TaskError && t.Error != nil {
			_, _ = fmt.Fprintf(w, "  %s %s: %s\n", StyleError.Render(IconError), t.Name, t.Error.Error())
		}
	}
	_, _ = fmt.Fprintln(w)
}

// SimpleProgress prints a linear status log for single-page operations
type SimpleProgress struct {
	writer  io.Writer
	title   string
	started bool
}

func NewSimpleProgress(title string) *SimpleProgress {
	return &SimpleProgress{title: title}
}

func (sp *SimpleProgress) SetWriter(w io.Writer) {
	sp.writer = w
}

func (sp *SimpleProgress) getWriter() io.Writer {
	if sp.writer == nil {
		return os.Stdout
	}
	return sp.writer
}

func (sp *SimpleProgress) Start() {
	if sp.started {
		return
	}
	sp.started = true
	_, _ = fmt.Fprintln(sp.getWriter())
	_, _ = fmt.Fprintln(sp.getWriter(), StyleTitle.Render(sp.title))
	_, _ = fmt.Fprintln(sp.getWriter())
}

func (sp *SimpleProgress) Step(message string) {
	_, _ = fmt.Fprintf(sp.getWriter(), "%s %s\n", StyleHighlight.Render(IconRunning), message)
}

func (sp *SimpleProgress) Success(message string) {
	_, _ = fmt.Fprintln(sp.getWriter(), StyleSuccess.Render(IconSuccess+" "+message))
}

func (sp *SimpleProgress) Error(message string) {
	_, _ = fmt.Fprintln(sp.getWriter(), StyleError.Render(IconError+" "+message))
}

func (sp *SimpleProgress) Warning(message string) {
	_, _ = fmt.Fprintf(sp.getWriter(), "%s %s\n", StyleWarning.Render(IconWarning), message)
}

func (sp *SimpleProgress) Info(message string) {
	_, _ = fmt.Fprintf(sp.getWriter(), "  %s\n", StyleInfo.Render(message))
}

// Block prints preformatted lines, such as an issue report, indented under the log
func (sp *SimpleProgress) Block(text string) {
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		_, _ = fmt.Fprintf(sp.getWriter(), "  %s\n", line)
	}
}

func (sp *SimpleProgress) Done() {
	_, _ = fmt.Fprintln(sp.getWriter())
}

func (sp *SimpleProgress) Failed(err error) {
	_, _ = fmt.Fprintln(sp.getWriter())
	if err != nil {
		_, _ = fmt.Fprintf(sp.getWriter(), "%s %s\n", StyleError.Render(IconError+" Failed:"), err.Error())
	} else {
		_, _ = fmt.Fprintln(sp.getWriter(), StyleError.Render(IconError+" Failed"))
	}
}
