package nui

import (
	"testing"
	"time"
)

func TestDoAfterDestroy(t *testing.T) {
	w := &Window{funcs: make(chan func(), 1), done: make(chan struct{})}
	w.funcs <- func() {}

	// the queue is full and nothing drains it any more
	w.shut()
	ran := make(chan struct{})
	go func() {
		w.Do(func() { t.Error("ran after destroy") })
		w.Close()
		close(ran)
	}()
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("Do blocked after destroy")
	}

	w.shut()
	w.drain()
	if len(w.funcs) != 0 {
		t.Fatalf("%v funcs left", len(w.funcs))
	}
}
