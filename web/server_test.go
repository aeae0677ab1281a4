package web

import (
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/mww/lolstats/controller"
	"github.com/mww/lolstats/controller/mockcontroller"
)

func TestServer_shutdown(t *testing.T) {
	// Grab a free port for the server.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("error finding a free port: %v", err)
	}
	port := l.Addr().(*net.TCPAddr).Port
	l.Close()

	ctrl := &mockcontroller.C{}
	ctrl.On("Status").Return(controller.Status{APIKeyConfigured: true, StoreAvailable: true})

	s, err := NewServer(ctrl, Options{Port: port, DefaultServer: "br"})
	if err != nil {
		t.Fatalf("error creating server: %v", err)
	}

	shutdown := make(chan bool)
	wg := &sync.WaitGroup{}
	wg.Add(1)
	served := make(chan struct{})
	go func() {
		s.ListenAndServe(shutdown, wg)
		close(served)
	}()

	url := s.server.Addr
	var resp *http.Response
	for i := 0; i < 50; i++ {
		resp, err = http.Get("http://127.0.0.1" + url + "/health")
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("server never came up: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}

	close(shutdown)
	select {
	case <-served:
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not shut down")
	}
	wg.Wait()
}
