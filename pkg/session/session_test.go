package session_test

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/goliatone/go-predictform/pkg/client"
	"github.com/goliatone/go-predictform/pkg/form"
	"github.com/goliatone/go-predictform/pkg/model"
	"github.com/goliatone/go-predictform/pkg/result"
	"github.com/goliatone/go-predictform/pkg/session"
)

var completeSelections = [][2]string{
	{"ram_capacity", "8"},
	{"internal_memory", "256"},
	{"processor_speed", "3.2"},
	{"screen_size", "6.8"},
	{"battery_capacity", "5000"},
	{"num_cores", "8"},
	{"refresh_rate", "144"},
}

func fillPrice(t *testing.T, s *session.PriceSession) {
	t.Helper()
	for _, pair := range completeSelections {
		if err := s.Select(pair[0], pair[1]); err != nil {
			t.Fatalf("select %s: %v", pair[0], err)
		}
	}
}

// blockingServer answers only after release is closed and records how many
// requests reached it.
type blockingServer struct {
	*httptest.Server
	hits    int32
	arrived chan struct{}
	release chan struct{}
}

func newBlockingServer(t *testing.T, body string) *blockingServer {
	t.Helper()
	bs := &blockingServer{
		arrived: make(chan struct{}, 4),
		release: make(chan struct{}),
	}
	bs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&bs.hits, 1)
		bs.arrived <- struct{}{}
		<-bs.release
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(bs.Close)
	return bs
}

func TestPriceSubmitSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"predicted_price": 450}`)
	}))
	defer server.Close()

	s := session.NewPriceSession(client.New(client.WithBaseURL(server.URL)), model.PhonePriceForm())
	fillPrice(t, s)

	state, err := s.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	summary, ok := state.Summary()
	if !ok {
		t.Fatalf("expected success, got %v", state.Kind())
	}
	if price, _ := summary.(result.Price); price.Value != 450 {
		t.Fatalf("summary = %#v", summary)
	}
	if s.Phase() != session.PhaseIdle {
		t.Fatalf("phase = %s", s.Phase())
	}
}

func TestPriceSubmitIncompleteDoesNotSend(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	s := session.NewPriceSession(client.New(client.WithBaseURL(server.URL)), model.PhonePriceForm())
	_ = s.Select("ram_capacity", "8")

	state, err := s.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if msg, ok := state.Message(); !ok || msg == "" {
		t.Fatalf("expected validation message, got %v", state.Kind())
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Fatalf("incomplete form reached the server")
	}
}

func TestPriceSubmitIncompleteResponseFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"price": 450}`)
	}))
	defer server.Close()

	s := session.NewPriceSession(client.New(client.WithBaseURL(server.URL)), model.PhonePriceForm())
	fillPrice(t, s)

	state, err := s.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if state.Kind() != result.KindFailure {
		t.Fatalf("kind = %v, want failure", state.Kind())
	}
	if msg, _ := state.Message(); msg != result.GenericFailure {
		t.Fatalf("message = %q", msg)
	}
}

func TestSubmitWhilePendingIsIgnored(t *testing.T) {
	server := newBlockingServer(t, `{"predicted_price": 999}`)
	s := session.NewPriceSession(client.New(client.WithBaseURL(server.URL)), model.PhonePriceForm())
	fillPrice(t, s)

	var (
		wg       sync.WaitGroup
		firstErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = s.Submit(context.Background())
	}()
	<-server.arrived

	if !s.Busy() {
		t.Fatalf("session should be pending")
	}
	if _, err := s.Submit(context.Background()); !errors.Is(err, session.ErrBusy) {
		t.Fatalf("second submit err = %v, want ErrBusy", err)
	}

	close(server.release)
	wg.Wait()

	if firstErr != nil {
		t.Fatalf("first submit: %v", firstErr)
	}
	if hits := atomic.LoadInt32(&server.hits); hits != 1 {
		t.Fatalf("expected one request, got %d", hits)
	}
	if s.Busy() {
		t.Fatalf("session should be idle after settling")
	}
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	server := newBlockingServer(t, `{"predicted_price": 999}`)
	s := session.NewPriceSession(client.New(client.WithBaseURL(server.URL)), model.PhonePriceForm())
	fillPrice(t, s)

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background())
		done <- err
	}()
	<-server.arrived

	if err := s.Select("ram_capacity", "16"); err != nil {
		t.Fatalf("select while pending: %v", err)
	}
	close(server.release)

	if err := <-done; !errors.Is(err, session.ErrStale) {
		t.Fatalf("submit err = %v, want ErrStale", err)
	}
	if !s.Result().IsEmpty() {
		t.Fatalf("stale response overwrote the result: %v", s.Result().Kind())
	}
	if got, _ := s.State().Option("ram_capacity"); got != "16" {
		t.Fatalf("newer selection lost: %q", got)
	}
}

func TestSubmitClearsPreviousResult(t *testing.T) {
	var status int32 = http.StatusBadRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if code := atomic.LoadInt32(&status); code != http.StatusOK {
			w.WriteHeader(int(code))
			_, _ = io.WriteString(w, `{"detail": "bad input"}`)
			return
		}
		_, _ = io.WriteString(w, `{"predicted_price": 300}`)
	}))
	defer server.Close()

	s := session.NewPriceSession(client.New(client.WithBaseURL(server.URL)), model.PhonePriceForm())
	fillPrice(t, s)

	state, _ := s.Submit(context.Background())
	if msg, _ := state.Message(); msg != "bad input" {
		t.Fatalf("message = %q", msg)
	}

	atomic.StoreInt32(&status, http.StatusOK)
	state, _ = s.Submit(context.Background())
	if _, isErr := state.Message(); isErr {
		t.Fatalf("error survived a successful resubmission")
	}
	if state.Kind() != result.KindSuccess {
		t.Fatalf("kind = %v", state.Kind())
	}
}

func TestUploadSessionFlow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, `{"detail":"no file"}`, http.StatusBadRequest)
			return
		}
		_, _ = io.WriteString(w, `{"prediction":"pituitary","confidence":"75.00%","confidence_value":0.75,"filename":"`+header.Filename+`"}`)
	}))
	defer server.Close()

	s := session.NewUploadSession(client.New(client.WithBaseURL(server.URL)), model.ImageUploadForm())

	state, err := s.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if msg, _ := state.Message(); msg != form.MessageNoFile {
		t.Fatalf("message = %q", msg)
	}

	if err := s.SelectFile(form.File{Name: "scan.png", MediaType: "image/png", Data: []byte("png")}); err != nil {
		t.Fatalf("select: %v", err)
	}
	if !s.Result().IsEmpty() {
		t.Fatalf("valid selection should clear the error")
	}

	if err := s.SelectFile(form.File{Name: "a.pdf", MediaType: "application/pdf", Data: []byte("%PDF")}); err == nil {
		t.Fatalf("expected rejection")
	}
	if msg, _ := s.Result().Message(); msg != form.MessageInvalidImage {
		t.Fatalf("message = %q", msg)
	}
	if file, _ := s.Upload().File(); file.Name != "scan.png" {
		t.Fatalf("selection changed to %q", file.Name)
	}

	state, err = s.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	summary, ok := state.Summary()
	if !ok {
		t.Fatalf("expected success, got %v", state.Kind())
	}
	diagnosis := summary.(result.Diagnosis)
	if diagnosis.Tier() != result.TierMedium || diagnosis.Filename != "scan.png" {
		t.Fatalf("diagnosis = %+v", diagnosis)
	}
}

func TestUploadRejectionWhilePendingKeepsResponse(t *testing.T) {
	server := newBlockingServer(t, `{"prediction":"glioma","confidence":"93.00%","confidence_value":0.93,"filename":"scan.png"}`)
	s := session.NewUploadSession(client.New(client.WithBaseURL(server.URL)), model.ImageUploadForm())
	if err := s.SelectFile(form.File{Name: "scan.png", MediaType: "image/png", Data: []byte("png")}); err != nil {
		t.Fatalf("select: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background())
		done <- err
	}()
	<-server.arrived

	err := s.SelectFile(form.File{Name: "notes.txt", MediaType: "text/plain", Data: []byte("hi")})
	if !form.IsValidation(err) || err.Error() != form.MessageInvalidImage {
		t.Fatalf("expected rejection, got %v", err)
	}
	if !s.Result().IsEmpty() {
		t.Fatalf("rejection while pending leaked into the result: %v", s.Result().Kind())
	}
	close(server.release)

	if err := <-done; err != nil {
		t.Fatalf("submit: %v", err)
	}
	if s.Result().Kind() != result.KindSuccess {
		t.Fatalf("kind = %v, want success", s.Result().Kind())
	}
	if file, _ := s.Upload().File(); file.Name != "scan.png" {
		t.Fatalf("selection changed to %q", file.Name)
	}
}

func TestUploadConnectivityFailure(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	base := "http://" + listener.Addr().String()
	_ = listener.Close()

	s := session.NewUploadSession(client.New(client.WithBaseURL(base)), model.ImageUploadForm())
	if err := s.SelectFile(form.File{Name: "scan.jpg", MediaType: "image/jpeg", Data: []byte("jpg")}); err != nil {
		t.Fatalf("select: %v", err)
	}

	state, err := s.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	msg, _ := state.Message()
	if msg != "Failed to connect to the server at "+base+". Is your backend running?" {
		t.Fatalf("message = %q", msg)
	}
	if s.Busy() {
		t.Fatalf("session stuck pending")
	}
}
