package tui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func newQuietProgress(title string, buf *bytes.Buffer) *Progress {
	p := NewProgress(title)
	p.SetWriter(buf)
	p.SetInterval(0)
	return p
}

func TestNewSimpleProgress(t *testing.T) {
	progress := NewSimpleProgress("Test Title")

	if progress == nil {
		t.Fatal("Expected SimpleProgress instance, got nil")
	}
	if progress.title != "Test Title" {
		t.Errorf("Expected title 'Test Title', got '%s'", progress.title)
	}
	if progress.started {
		t.Error("Expected started to be false initially")
	}
}

func TestSimpleProgress_StartIdempotent(t *testing.T) {
	var buf bytes.Buffer
	progress := NewSimpleProgress("Validate")
	progress.SetWriter(&buf)

	progress.Start()
	progress.Start()
	progress.Start()

	if count := strings.Count(buf.String(), "Validate"); count != 1 {
		t.Errorf("Expected title to appear once, but appeared %d times", count)
	}
}

func TestSimpleProgress_Messages(t *testing.T) {
	tests := []struct {
		name string
		emit func(*SimpleProgress)
		want []string
	}{
		{"step", func(sp *SimpleProgress) { sp.Step("Reading page.json") }, []string{"Reading page.json"}},
		{"info", func(sp *SimpleProgress) { sp.Info("5 sections") }, []string{"5 sections"}},
		{"success", func(sp *SimpleProgress) { sp.Success("page.json is valid") }, []string{IconSuccess, "page.json is valid"}},
		{"error", func(sp *SimpleProgress) { sp.Error("page.json is invalid") }, []string{IconError, "page.json is invalid"}},
		{"warning", func(sp *SimpleProgress) { sp.Warning("file exists") }, []string{IconWarning, "file exists"}},
		{"failed with error", func(sp *SimpleProgress) { sp.Failed(errors.New("disk full")) }, []string{"Failed:", "disk full"}},
		{"failed without error", func(sp *SimpleProgress) { sp.Failed(nil) }, []string{"Failed"}},
		{"block", func(sp *SimpleProgress) { sp.Block("a\nb\n") }, []string{"  a\n", "  b\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			sp := NewSimpleProgress("Test")
			sp.SetWriter(&buf)
			tt.emit(sp)

			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("Expected output to contain %q, got: %s", want, buf.String())
				}
			}
		})
	}
}

func TestProgress_TaskLifecycle(t *testing.T) {
	var buf bytes.Buffer
	p := newQuietProgress("Export", &buf)

	p.AddTask("a", "a.json")
	p.AddTask("b", "b.yaml")
	p.AddTask("c", "c.json")
	p.AddTask("a", "duplicate")

	p.Start()
	p.StartTask("a")
	p.CompleteTask("a", "dist/a.html")
	p.StartTask("b")
	p.FailTask("b", errors.New("validation failed"))
	p.SkipTask("c", "not a page file")
	p.StartTask("missing")
	p.Stop()

	tasks := p.Tasks()
	if len(tasks) != 3 {
		t.Fatalf("Expected 3 tasks, got %d", len(tasks))
	}
	if tasks[0].Name != "a.json" {
		t.Errorf("Expected duplicate id to be ignored, got name %q", tasks[0].Name)
	}

	expected := []TaskStatus{TaskSuccess, TaskError, TaskSkipped}
	for i, status := range expected {
		if tasks[i].Status != status {
			t.Errorf("Task %d: expected %s, got %s", i, status, tasks[i].Status)
		}
	}
	if tasks[0].Detail != "dist/a.html" {
		t.Errorf("Expected output path detail, got %q", tasks[0].Detail)
	}
	if tasks[1].Error == nil || tasks[1].EndTime.IsZero() {
		t.Error("Expected failed task to record its error and end time")
	}

	out := buf.String()
	for _, want := range []string{"Export", "a.json done", "dist/a.html", "b.yaml failed", "c.json skipped", "not a page file"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got: %s", want, out)
		}
	}
	if strings.Contains(out, "\033[A") {
		t.Error("Expected no cursor escapes without animation")
	}
}

func TestProgress_TaskOrder(t *testing.T) {
	var buf bytes.Buffer
	p := newQuietProgress("Export", &buf)
	for _, name := range []string{"first", "second", "third"} {
		p.AddTask(name, name)
	}
	p.Start()
	p.Stop()

	out := buf.String()
	first := strings.Index(out, "first")
	second := strings.Index(out, "second")
	third := strings.Index(out, "third")
	if !(first < second && second < third) {
		t.Errorf("Expected tasks in registration order, got: %s", out)
	}
}

func TestProgress_StopIdempotent(t *testing.T) {
	var buf bytes.Buffer
	p := newQuietProgress("Export", &buf)

	// Stop before Start is a no-op
	p.Stop()
	if buf.Len() != 0 {
		t.Errorf("Expected no output, got: %s", buf.String())
	}

	p.AddTask("a", "a.json")
	p.Start()
	p.Stop()
	p.Stop()

	if count := strings.Count(buf.String(), "a.json"); count != 1 {
		t.Errorf("Expected one final task line, got %d", count)
	}
}

func TestProgress_Animated(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress("Export")
	p.SetWriter(&buf)
	p.SetInterval(5 * time.Millisecond)

	p.AddTask("a", "a.json")
	p.Start()
	p.StartTask("a")
	time.Sleep(30 * time.Millisecond)
	p.CompleteTask("a", "")
	p.Stop()
	out := buf.String()

	if !strings.Contains(out, "\033[A\033[2K") {
		t.Error("Expected redraws to rewind the previous frame")
	}
	if !strings.Contains(out, "a.json done") {
		t.Errorf("Expected final frame to show the finished task, got: %q", out)
	}
}

func TestProgress_Summary(t *testing.T) {
	tests := []struct {
		name     string
		outcomes []TaskStatus
		want     Summary
		partial  bool
		contains []string
	}{
		{
			name:     "no tasks",
			want:     Summary{},
			contains: []string{"Completed: 0/0"},
		},
		{
			name:     "all completed",
			outcomes: []TaskStatus{TaskSuccess, TaskSuccess},
			want:     Summary{Total: 2, Succeeded: 2},
			contains: []string{IconSuccess, "Completed: 2/2"},
		},
		{
			name:     "partial",
			outcomes: []TaskStatus{TaskSuccess, TaskError, TaskSkipped},
			want:     Summary{Total: 3, Succeeded: 1, Failed: 1, Skipped: 1},
			partial:  true,
			contains: []string{"Completed: 1/2", "Failed: 1", "Skipped: 1", "task-1: broken"},
		},
		{
			name:     "all failed",
			outcomes: []TaskStatus{TaskError},
			want:     Summary{Total: 1, Failed: 1},
			contains: []string{"Failed: 1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			p := newQuietProgress("Export", &buf)
			for i, status := range tt.outcomes {
				id := "task-" + string(rune('0'+i))
				p.AddTask(id, id)
				switch status {
				case TaskSuccess:
					p.CompleteTask(id, "")
				case TaskError:
					p.FailTask(id, errors.New("broken"))
				case TaskSkipped:
					p.SkipTask(id, "")
				}
			}

			got := p.Summary()
			if got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
			if got.Partial() != tt.partial {
				t.Errorf("Expected Partial() = %v", tt.partial)
			}

			p.PrintSummary()
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("Expected summary to contain %q, got: %s", want, buf.String())
				}
			}
		})
	}
}

func TestProgress_ImplementsProgressReporter(t *testing.T) {
	var _ ProgressReporter = (*Progress)(nil)
	var _ ProgressReporter = (*NopProgressReporter)(nil)
}

func TestTaskStatus_String(t *testing.T) {
	tests := map[TaskStatus]string{
		TaskPending: "waiting",
		TaskRunning: "running",
		TaskSuccess: "done",
		TaskError:   "failed",
		TaskSkipped: "skipped",
	}
	for status, expected := range tests {
		if status.String() != expected {
			t.Errorf("Expected %q, got %q", expected, status.String())
		}
	}
}
