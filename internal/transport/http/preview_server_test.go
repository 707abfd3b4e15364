package httpserver

import (
	"testing"
	"time"
)

func TestStartStopLifecycle(t *testing.T) {
	s := NewServer("127.0.0.1:0", "<html></html>")
	if s.Running() {
		t.Fatal("fresh server reports running")
	}
	if err := s.StartOrUpdate("<p>a</p>", "doc.md", 1); err != nil {
		t.Fatalf("start: %v", err)
	}
	if !s.Running() {
		t.Fatal("server not running after StartOrUpdate")
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if s.Running() {
		t.Fatal("server still running after Stop")
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("second Stop: %v", err)
	}
}

func TestRestartKeepsConsumingUpdates(t *testing.T) {
	s := NewServer("127.0.0.1:0", "<html></html>")
	if err := s.StartOrUpdate("<p>a</p>", "doc.md", 1); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}

	// Publish well past the update buffer size: if the restarted server had
	// no live run loop these sends would block forever.
	done := make(chan struct{})
	go func() {
		for rev := uint64(2); rev < 32; rev++ {
			_ = s.StartOrUpdate("<p>b</p>", "doc.md", rev)
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("updates stopped draining after restart")
	}
	if !s.Running() {
		t.Fatal("server not running after restart")
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("final stop: %v", err)
	}
}

func TestStopDuringStartDoesNotCrash(t *testing.T) {
	s := NewServer("127.0.0.1:0", "<html></html>")
	for i := 0; i < 25; i++ {
		rev := uint64(i + 1)
		go func() {
			_ = s.StartOrUpdate("<p>x</p>", "doc.md", rev)
		}()
		_ = s.Stop()
	}
	time.Sleep(100 * time.Millisecond)
	_ = s.Stop()
}
