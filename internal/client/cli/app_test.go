package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/vendorrisk/internal/assessment"
	"github.com/dmitrijs2005/vendorrisk/internal/client/client"
	"github.com/dmitrijs2005/vendorrisk/internal/client/config"
	"github.com/dmitrijs2005/vendorrisk/internal/client/dashboard"
	"github.com/dmitrijs2005/vendorrisk/internal/common"
	"github.com/dmitrijs2005/vendorrisk/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.DownloadDir = t.TempDir()
	return c
}

func newTestApp(t *testing.T, b backend, input string) (*App, *bytes.Buffer, *dashboard.MemorySource) {
	t.Helper()
	src := dashboard.NewMemorySource(assessment.SampleAssessments())
	if b == nil {
		b = src
	}
	var out bytes.Buffer
	a := newApp(testConfig(t), logging.Discard(), b, src, strings.NewReader(input), &out)
	// a failing source leaves the dashboard empty
	_ = a.dashboard.Load(context.Background())
	return a, &out, src
}

// linkedSource serves documents from a fixed URL.
type linkedSource struct {
	*dashboard.MemorySource
	url string
	err error
}

func (l *linkedSource) DocumentURL(ctx context.Context, id, name string) (string, error) {
	return l.url + "/" + id + "/" + name, l.err
}

func TestApp_Refresh(t *testing.T) {
	a, out, _ := newTestApp(t, nil, "")

	require.NoError(t, a.Refresh(context.Background()))
	assert.Contains(t, out.String(), "CloudTech Solutions")
	assert.Contains(t, out.String(), "Pending Review")
	assert.Contains(t, out.String(), "Last Updated")
}

func TestApp_Refresh_Unavailable(t *testing.T) {
	src := dashboard.NewMemorySource(nil)
	a, out, _ := newTestApp(t, &failingSource{MemorySource: src, err: client.ErrUnavailable}, "")

	err := a.Refresh(context.Background())
	assert.ErrorIs(t, err, client.ErrUnavailable)
	assert.Contains(t, out.String(), "Server unavailable")
}

type failingSource struct {
	*dashboard.MemorySource
	err error
}

func (f *failingSource) List(ctx context.Context, _ assessment.Filter) ([]*assessment.Assessment, error) {
	return nil, f.err
}

func TestApp_SearchAndFilter(t *testing.T) {
	a, out, _ := newTestApp(t, nil, "")
	ctx := context.Background()

	require.NoError(t, a.Search(ctx, "nothing like this"))
	assert.Contains(t, out.String(), "No assessments match")
	assert.Contains(t, a.getStatus(), `search="nothing like this"`)

	out.Reset()
	require.NoError(t, a.Search(ctx, "cloudtech"))
	assert.Contains(t, out.String(), "CloudTech Solutions")

	out.Reset()
	require.NoError(t, a.Filter(ctx, "approved"))
	assert.Contains(t, out.String(), "No assessments match")
	assert.Contains(t, a.getStatus(), "status=approved")

	out.Reset()
	err := a.Filter(ctx, "maybe")
	assert.ErrorIs(t, err, common.ErrorInvalidStatus)
	assert.Contains(t, out.String(), `Unknown status "maybe"`)

	require.NoError(t, a.Filter(ctx, "all"))
	assert.NotContains(t, a.getStatus(), "status=")
}

func TestApp_SortCycle(t *testing.T) {
	a, out, _ := newTestApp(t, nil, "")
	ctx := context.Background()

	require.NoError(t, a.Sort(ctx, "vendorName"))
	assert.Contains(t, out.String(), "Sorted by vendorName asc")
	assert.Contains(t, out.String(), "Vendor ^")

	out.Reset()
	require.NoError(t, a.Sort(ctx, "vendorname"))
	assert.Contains(t, out.String(), "Sorted by vendorName desc")
	assert.Contains(t, out.String(), "Vendor v")

	out.Reset()
	require.NoError(t, a.Sort(ctx, "vendorName"))
	assert.Contains(t, out.String(), "Sort cleared")

	out.Reset()
	err := a.Sort(ctx, "price")
	assert.ErrorIs(t, err, common.ErrorInvalidColumn)
	assert.Contains(t, out.String(), "Unknown column")
}

func TestApp_OpenAndClose(t *testing.T) {
	a, out, _ := newTestApp(t, nil, "")
	ctx := context.Background()

	require.NoError(t, a.Open(ctx, "1"))
	assert.Contains(t, out.String(), "Assessment Details")
	assert.Contains(t, out.String(), "Submitted: March 10th, 2024")
	assert.Contains(t, a.getStatus(), "open=1")
	require.NotNil(t, a.dashboard.Selected())

	require.NoError(t, a.Close(ctx))
	assert.Nil(t, a.modal)
	assert.Nil(t, a.dashboard.Selected())
}

func TestApp_Open_Errors(t *testing.T) {
	a, out, _ := newTestApp(t, nil, "")
	ctx := context.Background()

	assert.ErrorIs(t, a.Open(ctx, ""), common.ErrorInvalidRequest)
	assert.Contains(t, out.String(), "Usage: open")

	assert.ErrorIs(t, a.Open(ctx, "42"), common.ErrorNotFound)
	assert.ErrorIs(t, a.Open(ctx, "nope"), common.ErrorNotFound)
	assert.Nil(t, a.modal)
}

func TestApp_NotesAndApprove(t *testing.T) {
	a, out, src := newTestApp(t, nil, "Certs verified\nDPA signed\n\n")
	ctx := context.Background()

	require.NoError(t, a.Open(ctx, "1"))
	require.NoError(t, a.Notes(ctx))
	assert.Equal(t, "Certs verified\nDPA signed", a.modal.Notes())

	out.Reset()
	require.NoError(t, a.Decide(ctx, assessment.StatusApproved))
	assert.Contains(t, out.String(), "CloudTech Solutions / Data Storage Service is now Approved")
	assert.Nil(t, a.modal)

	stored, err := src.List(ctx, assessment.Filter{})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, assessment.StatusApproved, stored[0].Status)
	assert.Equal(t, "Certs verified\nDPA signed", stored[0].Notes())

	assert.Equal(t, assessment.StatusApproved, a.dashboard.Records()[0].Status)
}

// failingUpdates lists normally but rejects every decision.
type failingUpdates struct {
	*dashboard.MemorySource
	err error
}

func (f *failingUpdates) Update(ctx context.Context, id string, u assessment.StatusUpdate) (*assessment.Assessment, error) {
	return nil, f.err
}

func TestApp_Decide_FailureKeepsModal(t *testing.T) {
	src := dashboard.NewMemorySource(assessment.SampleAssessments())
	a, out, _ := newTestApp(t, &failingUpdates{MemorySource: src, err: errors.New("db down")}, "")
	ctx := context.Background()

	require.NoError(t, a.Open(ctx, "1"))
	a.modal.SetNotes("keep me")

	err := a.Decide(ctx, assessment.StatusRejected)
	assert.Error(t, err)
	assert.Contains(t, out.String(), "Error: db down")
	require.NotNil(t, a.modal)
	assert.Equal(t, "keep me", a.modal.Notes())
	assert.Equal(t, assessment.StatusPending, a.modal.Assessment().Status)
	assert.NotNil(t, a.dashboard.Selected())
}

func TestApp_Decide_NothingOpen(t *testing.T) {
	a, out, _ := newTestApp(t, nil, "")

	assert.ErrorIs(t, a.Decide(context.Background(), assessment.StatusApproved), errNoneOpen)
	assert.ErrorIs(t, a.Notes(context.Background()), errNoneOpen)
	assert.ErrorIs(t, a.Download(context.Background(), "SLA.pdf"), errNoneOpen)
	assert.Contains(t, out.String(), "no assessment is open")
}

func TestApp_Decide_PendingIsNotAnAction(t *testing.T) {
	a, _, _ := newTestApp(t, nil, "")
	ctx := context.Background()

	require.NoError(t, a.Open(ctx, "1"))
	assert.ErrorIs(t, a.Decide(ctx, assessment.StatusPending), common.ErrorInvalidStatus)
	assert.NotNil(t, a.modal)
}

func TestApp_Refresh_KeepsOpenDraft(t *testing.T) {
	a, _, _ := newTestApp(t, nil, "")
	ctx := context.Background()

	require.NoError(t, a.Open(ctx, "1"))
	a.modal.SetNotes("half written")

	require.NoError(t, a.Refresh(ctx))
	require.NotNil(t, a.modal)
	assert.Equal(t, "half written", a.modal.Notes())
	assert.Equal(t, "1", a.modal.Assessment().ID)
}

func TestApp_Download(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/1/SLA.pdf", r.URL.Path)
		_, _ = io.WriteString(w, "%PDF-1.7")
	}))
	defer srv.Close()

	src := dashboard.NewMemorySource(assessment.SampleAssessments())
	a, out, _ := newTestApp(t, &linkedSource{MemorySource: src, url: srv.URL}, "")
	ctx := context.Background()

	require.NoError(t, a.Open(ctx, "1"))
	require.NoError(t, a.Download(ctx, "SLA.pdf"))

	path := filepath.Join(a.config.DownloadDir, "SLA.pdf")
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7", string(b))
	assert.Contains(t, out.String(), "Saved "+path+" (8 bytes)")
}

func TestApp_Download_ServerErrorRemovesFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusForbidden)
	}))
	defer srv.Close()

	src := dashboard.NewMemorySource(assessment.SampleAssessments())
	a, out, _ := newTestApp(t, &linkedSource{MemorySource: src, url: srv.URL}, "")
	ctx := context.Background()

	require.NoError(t, a.Open(ctx, "1"))
	assert.Error(t, a.Download(ctx, "NDA.pdf"))
	assert.NoFileExists(t, filepath.Join(a.config.DownloadDir, "NDA.pdf"))
	assert.Contains(t, out.String(), "download failed")
}

func TestApp_Download_Offline(t *testing.T) {
	a, out, _ := newTestApp(t, nil, "")
	ctx := context.Background()

	require.NoError(t, a.Open(ctx, "1"))
	assert.ErrorIs(t, a.Download(ctx, "ISO27001.pdf"), common.ErrorDocumentStoreDisabled)
	assert.Contains(t, out.String(), "document store is not configured")
}

func TestApp_Download_UnknownDocument(t *testing.T) {
	a, out, _ := newTestApp(t, nil, "")
	ctx := context.Background()

	require.NoError(t, a.Open(ctx, "1"))
	assert.ErrorIs(t, a.Download(ctx, "../etc/passwd"), common.ErrorDocumentNotFound)
	assert.Contains(t, out.String(), `No document "../etc/passwd"`)
}

type fakePinger struct {
	down atomic.Bool
}

func (f *fakePinger) Ping(ctx context.Context) error {
	if f.down.Load() {
		return client.ErrUnavailable
	}
	return nil
}

func TestApp_CheckOnline(t *testing.T) {
	a, out, _ := newTestApp(t, nil, "")
	p := &fakePinger{}
	a.pinger = p

	a.checkOnline(context.Background())
	assert.Equal(t, ModeOnline, a.Mode())
	assert.Contains(t, out.String(), "Switched to online mode")

	p.down.Store(true)
	a.checkOnline(context.Background())
	assert.Equal(t, ModeOffline, a.Mode())
	assert.Contains(t, a.getStatus(), "offline")
}

func TestApp_StartOnlineStatusWatcher(t *testing.T) {
	src := dashboard.NewMemorySource(nil)
	a := newApp(testConfig(t), logging.Discard(), src, src, strings.NewReader(""), io.Discard)
	p := &fakePinger{}
	a.pinger = p

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.StartOnlineStatusWatcher(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return a.Mode() == ModeOnline }, time.Second, 5*time.Millisecond)
	p.down.Store(true)
	assert.Eventually(t, func() bool { return a.Mode() == ModeOffline }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestApp_StartOnlineStatusWatcher_NonPositiveInterval(t *testing.T) {
	src := dashboard.NewMemorySource(nil)
	a := newApp(testConfig(t), logging.Discard(), src, src, strings.NewReader(""), io.Discard)
	p := &fakePinger{}
	a.pinger = p

	for _, interval := range []time.Duration{0, -time.Second} {
		done := make(chan struct{})
		go func() {
			assert.NotPanics(t, func() { a.StartOnlineStatusWatcher(context.Background(), interval) })
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatalf("watcher with interval %s did not return", interval)
		}
	}
}

func TestApp_Run_Sample(t *testing.T) {
	captureOutput(t)

	src := dashboard.NewMemorySource(assessment.SampleAssessments())
	var out bytes.Buffer
	a := newApp(testConfig(t), logging.Discard(), src, src, strings.NewReader("open 1\napprove\nexit\n"), &out)
	a.mode = ModeSample

	a.Run(context.Background())

	assert.Contains(t, out.String(), "Vendor Risk Assessments")
	assert.Contains(t, out.String(), "is now Approved")
}

type closingClient struct {
	client.Client
	closed bool
}

func (c *closingClient) Close() error {
	c.closed = true
	return nil
}

func TestNewApp(t *testing.T) {
	orig := newClient
	t.Cleanup(func() { newClient = orig })

	cc := &closingClient{}
	var gotAddr string
	newClient = func(addr string) (client.Client, error) {
		gotAddr = addr
		return cc, nil
	}

	c := testConfig(t)
	c.ServerEndpointAddr = "review:50051"
	a, err := NewApp(c)
	require.NoError(t, err)
	assert.Equal(t, "review:50051", gotAddr)
	assert.Equal(t, ModeOffline, a.Mode())
	assert.NotNil(t, a.pinger)

	a.close()
	assert.True(t, cc.closed)
}

func TestNewApp_ClientError(t *testing.T) {
	orig := newClient
	t.Cleanup(func() { newClient = orig })
	newClient = func(string) (client.Client, error) { return nil, errors.New("bad target") }

	_, err := NewApp(testConfig(t))
	assert.ErrorContains(t, err, "bad target")
}

func TestNewApp_Offline(t *testing.T) {
	c := testConfig(t)
	c.Offline = true

	a, err := NewApp(c)
	require.NoError(t, err)
	assert.Equal(t, ModeSample, a.Mode())
	assert.Nil(t, a.pinger)
	assert.Nil(t, a.closer)
}
