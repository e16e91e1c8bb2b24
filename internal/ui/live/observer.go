package live

import (
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"connections/internal/runner"
)

// Controller runs the live UI and implements runner.RunObserver.
type Controller struct {
	events    chan Event
	program   *tea.Program
	done      chan struct{}
	closeOnce sync.Once
}

// Start launches a live UI controller that writes to stdout.
func Start(stdout io.Writer, opts Options) *Controller {
	if stdout == nil {
		stdout = os.Stdout
	}
	events := make(chan Event, 256)
	model := NewModel(events, opts)
	program := tea.NewProgram(model, tea.WithOutput(stdout), tea.WithAltScreen())
	controller := &Controller{
		events:  events,
		program: program,
		done:    make(chan struct{}),
	}
	go func() {
		_, _ = program.Run()
		close(controller.done)
	}()
	return controller
}

// Close signals the UI to stop.
func (c *Controller) Close() {
	if c == nil {
		return
	}
	c.closeOnce.Do(func() {
		close(c.events)
	})
}

// Wait blocks until the UI has exited.
func (c *Controller) Wait() {
	if c == nil {
		return
	}
	<-c.done
}

// OnRunStart forwards run start events to the UI.
func (c *Controller) OnRunStart(runID string, model string, trials int) {
	c.send(Event{Kind: EventRunStart, RunID: runID, Model: model, Trials: trials})
}

// OnTrialEvent forwards trial status updates to the UI.
func (c *Controller) OnTrialEvent(event runner.TrialEvent) {
	c.send(Event{Kind: EventTrial, Trial: event})
}

// OnRunEnd forwards run completion events to the UI and closes it.
func (c *Controller) OnRunEnd(runner.Results) {
	c.send(Event{Kind: EventRunEnd})
	c.Close()
}

// send enqueues an event. Progress ticks are dropped under
// backpressure; lifecycle events wait for buffer space so a finished
// trial never renders as running forever.
func (c *Controller) send(event Event) {
	if c == nil {
		return
	}
	if droppable(event) {
		select {
		case c.events <- event:
		default:
		}
		return
	}
	select {
	case c.events <- event:
	case <-c.done:
	}
}

// droppable reports whether the UI can afford to lose the event.
func droppable(event Event) bool {
	if event.Kind != EventTrial {
		return false
	}
	switch event.Trial.Type {
	case runner.TrialGuess, runner.TrialRetrying:
		return true
	}
	return false
}
