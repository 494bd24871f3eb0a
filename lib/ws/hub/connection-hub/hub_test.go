package connectionhub

import (
	"sync"
	"testing"
	"time"

	wsmodels "hr-onboarding-backend/models/ws"

	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu     sync.Mutex
	msgs   []wsmodels.ServerMessage
	closed bool
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, v.(wsmodels.ServerMessage))
	return nil
}

func (f *fakeConn) WriteControl(messageType int, data []byte, deadline time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) received() []wsmodels.ServerMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]wsmodels.ServerMessage(nil), f.msgs...)
}

func (f *fakeConn) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func TestHub(t *testing.T) {
	t.Run(`Broadcast reaches every client`, func(t *testing.T) {
		hub := newHub()
		first, second := &fakeConn{}, &fakeConn{}
		hub.AddClient("user-1", first)
		hub.AddClient("user-2", second)
		require.True(t, hub.IsConnected("user-1"))

		hub.Broadcast(wsmodels.ServerMessage{Code: wsmodels.EventStageChanged, CandidateID: "c-1"})

		require.Eventually(t, func() bool {
			return len(first.received()) == 1 && len(second.received()) == 1
		}, time.Second, 5*time.Millisecond)
		require.Equal(t, "user-1", first.received()[0].ToUserID)
		require.Equal(t, "c-1", second.received()[0].CandidateID)
	})

	t.Run(`SendMessage targets one client`, func(t *testing.T) {
		hub := newHub()
		first, second := &fakeConn{}, &fakeConn{}
		hub.AddClient("user-1", first)
		hub.AddClient("user-2", second)

		hub.SendMessage(wsmodels.ServerMessage{ToUserID: "user-2", Code: wsmodels.EventActivated})

		require.Eventually(t, func() bool {
			return len(second.received()) == 1
		}, time.Second, 5*time.Millisecond)
		require.Empty(t, first.received())
	})

	t.Run(`DeleteClient closes session`, func(t *testing.T) {
		hub := newHub()
		conn := &fakeConn{}
		hub.AddClient("user-1", conn)
		hub.DeleteClient("user-1", conn)
		require.False(t, hub.IsConnected("user-1"))
		require.Eventually(t, conn.isClosed, time.Second, 5*time.Millisecond)

		// повторное удаление и рассылка без клиентов не паникуют
		hub.DeleteClient("user-1", conn)
		hub.Broadcast(wsmodels.ServerMessage{Code: wsmodels.EventCreated})
	})

	t.Run(`closing old connection keeps reconnected session`, func(t *testing.T) {
		hub := newHub()
		old, current := &fakeConn{}, &fakeConn{}
		hub.AddClient("user-1", old)
		hub.AddClient("user-1", current)
		require.Eventually(t, old.isClosed, time.Second, 5*time.Millisecond)

		hub.DeleteClient("user-1", old)
		require.True(t, hub.IsConnected("user-1"))

		hub.Broadcast(wsmodels.ServerMessage{Code: wsmodels.EventStageChanged, CandidateID: "c-1"})
		require.Eventually(t, func() bool {
			return len(current.received()) == 1
		}, time.Second, 5*time.Millisecond)
		require.False(t, current.isClosed())
	})
}
