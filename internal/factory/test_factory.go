package factory

import (
	"net/http/httptest"
	"time"

	"github.com/smeargame/smearcli/internal/api"
	"github.com/smeargame/smearcli/internal/dependencies/mocks"
	"github.com/smeargame/smearcli/internal/dependencies/random"
	"github.com/smeargame/smearcli/internal/gamesync"
	"github.com/smeargame/smearcli/internal/session"
	"github.com/smeargame/smearcli/internal/smeartest"
	"github.com/smeargame/smearcli/internal/store/memory"
	"github.com/smeargame/smearcli/internal/testutil"
)

// TestApp extends App with an in-process fake server and mocked
// dependencies
type TestApp struct {
	*App

	Fake   *smeartest.Server
	Server *httptest.Server

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App wired against a fake server, with a memory
// store and a fast poll interval
func NewTestApp() *TestApp {
	logger := testutil.NopLogger()
	mockClock := mocks.NewMockClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))

	fake := smeartest.NewServer(smeartest.Config{
		Logger: logger,
		Clock:  mockClock,
	})
	server := httptest.NewServer(fake)

	app := &App{
		Store:        memory.New(),
		Client:       api.NewClient(server.URL, logger),
		Clock:        mockClock,
		Random:       random.New(),
		Logger:       logger,
		PollInterval: 5 * time.Millisecond,
	}

	return &TestApp{
		App:       app,
		Fake:      fake,
		Server:    server,
		MockClock: mockClock,
	}
}

// AddUser seeds an account on the fake server
func (t *TestApp) AddUser(email, password string, user session.User) {
	t.Fake.AddUser(email, password, user)
}

// Shutdown closes the fake server and releases app resources
func (t *TestApp) Shutdown() {
	t.Server.Close()
	_ = t.Close()
}

var _ gamesync.GameAPI = (*api.Client)(nil)
