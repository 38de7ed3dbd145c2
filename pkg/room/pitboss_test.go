package room

import (
	"context"
	"holdemshot-server/internal/rng"
	"holdemshot-server/pkg/playable"
	"holdemshot-server/pkg/playable/holdemshot"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPitBoss_CreatePrivateRoom(t *testing.T) {
	a := assert.New(t)

	// Q, 7, X, 2, K
	pb := newTestPitBoss(14, 29, 21, 24, 9)

	host := newTestClient("Ada")
	d, err := pb.CreatePrivateRoom(host.Player(), 1)
	require.NoError(t, err)
	a.Equal("Q7X2K", d.Code())
	a.Equal(d, host.Dealer())

	res := expectKey(t, host, "roomJoined")
	a.Equal(roomJoinedData{Code: "Q7X2K", Seat: 0, Bullets: 1, Private: true}, res.Data)

	// nothing starts with one seat
	expectNoMessage(t, host)
	a.Equal(1, d.Snapshot().Seats)
	a.Equal("waiting", d.Snapshot().Phase)

	_, err = pb.CreatePrivateRoom(host.Player(), 1)
	a.ErrorIs(err, ErrAlreadySeated)

	guest := newTestClient("Bo")
	joined, err := pb.JoinPrivateRoom(guest.Player(), " q7x2k ")
	require.NoError(t, err)
	a.Equal(d, joined)

	res = expectKey(t, guest, "roomJoined")
	a.Equal(roomJoinedData{Code: "Q7X2K", Seat: 1, Bullets: 1, Private: true}, res.Data)
	res = expectKey(t, guest, "matchFound")
	a.Equal(matchFoundData{Code: "Q7X2K", Opponent: "Ada", Bot: false}, res.Data)
	expectKey(t, guest, "game")

	res = expectKey(t, host, "matchFound")
	a.Equal(matchFoundData{Code: "Q7X2K", Opponent: "Bo", Bot: false}, res.Data)
	state := expectKey(t, host, "game").Data.(*holdemshot.PlayerState)
	a.Equal(holdemshot.PhaseExchange, state.Phase)
	a.Equal(1, state.Round)
	a.Len(state.Board, 3)

	third := newTestClient("Cy")
	_, err = pb.JoinPrivateRoom(third.Player(), "Q7X2K")
	a.ErrorIs(err, ErrRoomFull)
	a.Nil(third.Dealer())

	_, err = pb.JoinPrivateRoom(third.Player(), "ZZZZZ")
	a.ErrorIs(err, ErrRoomNotFound)
}

func TestPitBoss_codeCollision(t *testing.T) {
	a := assert.New(t)
	pb := newTestPitBoss(0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1)

	d1, err := pb.CreatePrivateRoom(newTestClient("Ada").Player(), 2)
	require.NoError(t, err)
	d2, err := pb.CreatePrivateRoom(newTestClient("Bo").Player(), 2)
	require.NoError(t, err)

	a.Equal("AAAAA", d1.Code())
	a.Equal("BBBBB", d2.Code())

	snapshot := pb.Snapshot()
	a.Len(snapshot, 2)
	a.Equal("AAAAA", snapshot[0].Code)
	a.Equal(2, snapshot[0].Bullets)
	a.True(snapshot[0].Private)

	_, err = pb.CreatePrivateRoom(newTestClient("Cy").Player(), 4)
	a.ErrorIs(err, holdemshot.ErrInvalidBullets)
}

func TestPitBoss_codeLength(t *testing.T) {
	pb := NewPitBoss(newTestPitBoss().logger, Settings{CodeLength: 8})
	d, err := pb.CreatePrivateRoom(newTestClient("Ada").Player(), 1)
	require.NoError(t, err)
	assert.Regexp(t, `^[ABCDEFGHJKLMNPQRSTUVWXYZ2-9]{8}$`, d.Code())
}

func TestPitBoss_matchedRoomsAreNotJoinable(t *testing.T) {
	pb := newTestPitBoss(0, 0, 0, 0, 0)
	require.NoError(t, pb.FormMatch(newTestClient("Ada").Player(), newTestClient("Bo").Player(), 1))

	_, err := pb.JoinPrivateRoom(newTestClient("Cy").Player(), "AAAAA")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestPitBoss_FormMatch(t *testing.T) {
	a := assert.New(t)
	pb := newTestPitBoss()

	ada := newTestClient("Ada")
	bo := newTestClient("Bo")
	require.NoError(t, pb.FormMatch(ada.Player(), bo.Player(), 1))

	res := expectKey(t, ada, "roomJoined")
	a.False(res.Data.(roomJoinedData).Private)
	res = expectKey(t, ada, "matchFound")
	a.Equal("Bo", res.Data.(matchFoundData).Opponent)
	a.False(res.Data.(matchFoundData).Bot)

	// the deal happens without anyone asking
	state := expectKey(t, ada, "game").Data.(*holdemshot.PlayerState)
	a.Equal(holdemshot.PhaseExchange, state.Phase)
	a.Equal(holdemshot.PhaseFlop, state.Street)

	expectKey(t, bo, "roomJoined")
	expectKey(t, bo, "matchFound")
	expectKey(t, bo, "game")

	a.NotNil(ada.Dealer())
	a.Equal(ada.Dealer(), bo.Dealer())
}

func TestPitBoss_FormBotMatch(t *testing.T) {
	a := assert.New(t)
	pb := newTestPitBoss()

	ada := newTestClient("Ada")
	require.NoError(t, pb.FormBotMatch(ada.Player(), 2))

	expectKey(t, ada, "roomJoined")
	res := expectKey(t, ada, "matchFound")
	a.True(res.Data.(matchFoundData).Bot)
	a.NotEmpty(res.Data.(matchFoundData).Opponent)

	// the bot submits its exchange before the first push
	state := expectKey(t, ada, "game").Data.(*holdemshot.PlayerState)
	a.True(state.Opponent.Ready)
	a.False(state.Participant.Ready)

	ada.ReceivedMessage(&playable.PayloadIn{Action: "ready", Context: "c1"})
	a.Equal(playable.OK("c1"), expectKey(t, ada, "status"))

	state = expectKey(t, ada, "game").Data.(*holdemshot.PlayerState)
	a.Equal(holdemshot.PhaseTurn, state.Street)
	a.True(state.Opponent.Ready)

	snapshot := pb.Snapshot()
	require.Len(t, snapshot, 1)
	a.Equal(1, snapshot[0].Bots)
	a.Equal(2, snapshot[0].Seats)
}

func TestPitBoss_ClientDisconnected(t *testing.T) {
	a := assert.New(t)
	pb := newTestPitBoss()

	ada := newTestClient("Ada")
	bo := newTestClient("Bo")
	require.NoError(t, pb.FormMatch(ada.Player(), bo.Player(), 1))
	waitForKey(t, bo, "game")

	pb.ClientDisconnected(ada)

	res := waitForKey(t, bo, "gameOver")
	gameOver := res.Data.(*holdemshot.GameOverEvent)
	a.Equal("Bo", gameOver.Winner)
	a.Equal("Ada", gameOver.Loser)
	a.Equal(holdemshot.ReasonDisconnected, gameOver.Reason)

	state := expectKey(t, bo, "game").Data.(*holdemshot.PlayerState)
	a.Equal(holdemshot.PhaseGameOver, state.Phase)

	a.Eventually(func() bool {
		return len(pb.Snapshot()) == 0 && bo.Dealer() == nil
	}, time.Second, time.Millisecond*10)

	// no dealer, nothing happens
	pb.ClientDisconnected(ada)
}

func TestPitBoss_FormMatch_disconnectedBeforeSeating(t *testing.T) {
	a := assert.New(t)
	pb := newTestPitBoss()

	ada := newTestClient("Ada")
	bo := newTestClient("Bo")

	// Ada drops after being paired but before the room seats her
	pb.ClientDisconnected(ada)
	require.NoError(t, pb.FormMatch(ada.Player(), bo.Player(), 1))

	gameOver := waitForKey(t, bo, "gameOver").Data.(*holdemshot.GameOverEvent)
	a.Equal("Bo", gameOver.Winner)
	a.Equal("Ada", gameOver.Loser)
	a.Equal(holdemshot.ReasonDisconnected, gameOver.Reason)

	a.Eventually(func() bool {
		return len(pb.Snapshot()) == 0 && bo.Dealer() == nil
	}, time.Second, time.Millisecond*10)
	a.Nil(ada.Dealer())
}

func TestPitBoss_disconnectWhileSeating(t *testing.T) {
	a := assert.New(t)
	pb := newTestPitBoss()

	ada := newTestClient("Ada")
	bo := newTestClient("Bo")

	d, err := pb.openRoom(holdemshot.Options{Bullets: 1})
	require.NoError(t, err)

	// the seat is claimed, then the client drops before the game starts
	require.NoError(t, d.reserve(ada.Player()))
	pb.ClientDisconnected(ada)

	_, err = d.addPlayer(ada.Player())
	require.NoError(t, err)
	_, err = d.addPlayer(bo.Player())
	require.NoError(t, err)

	gameOver := waitForKey(t, bo, "gameOver").Data.(*holdemshot.GameOverEvent)
	a.Equal("Bo", gameOver.Winner)
	a.Equal(holdemshot.ReasonDisconnected, gameOver.Reason)

	a.Eventually(func() bool {
		return len(pb.Snapshot()) == 0
	}, time.Second, time.Millisecond*10)
}

func TestPitBoss_FormBotMatch_alreadyInPrivateRoom(t *testing.T) {
	a := assert.New(t)
	pb := newTestPitBoss()

	host := newTestClient("Ada")
	d, err := pb.CreatePrivateRoom(host.Player(), 1)
	require.NoError(t, err)
	expectKey(t, host, "roomJoined")

	a.ErrorIs(pb.FormBotMatch(host.Player(), 1), ErrAlreadySeated)
	a.Equal(d, host.Dealer())
	a.Len(pb.Snapshot(), 1)
	expectNoMessage(t, host)
}

func TestPitBoss_FormMatch_releasesReservation(t *testing.T) {
	a := assert.New(t)
	pb := newTestPitBoss()

	ada := newTestClient("Ada")
	bo := newTestClient("Bo")
	d, err := pb.CreatePrivateRoom(bo.Player(), 1)
	require.NoError(t, err)
	expectKey(t, bo, "roomJoined")

	a.ErrorIs(pb.FormMatch(ada.Player(), bo.Player(), 1), ErrAlreadySeated)
	a.True(ada.Available())
	a.Equal(d, bo.Dealer())
	a.Len(pb.Snapshot(), 1)
	expectNoMessage(t, ada)
	expectNoMessage(t, bo)
}

func TestPitBoss_CreatePrivateRoom_disconnectedHost(t *testing.T) {
	pb := newTestPitBoss()

	host := newTestClient("Ada")
	pb.ClientDisconnected(host)

	d, err := pb.CreatePrivateRoom(host.Player(), 1)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		_, found := pb.Dealer(d.Code())
		return !found
	}, time.Second, time.Millisecond*10)
	assert.Nil(t, host.Dealer())
}

func TestPitBoss_hostLeavesPrivateRoom(t *testing.T) {
	pb := newTestPitBoss()

	host := newTestClient("Ada")
	d, err := pb.CreatePrivateRoom(host.Player(), 1)
	require.NoError(t, err)

	pb.ClientDisconnected(host)

	assert.Eventually(t, func() bool {
		_, found := pb.Dealer(d.Code())
		return !found && host.Dealer() == nil
	}, time.Second, time.Millisecond*10)

	_, err = pb.JoinPrivateRoom(newTestClient("Bo").Player(), d.Code())
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

type mockRecorder struct {
	mock.Mock
	recorded chan string
}

func (m *mockRecorder) Record(ctx context.Context, code string, details *playable.GameOverDetails) error {
	args := m.Called(ctx, code, details)
	m.recorded <- code
	return args.Error(0)
}

func TestPitBoss_recordsFinishedGames(t *testing.T) {
	recorder := &mockRecorder{recorded: make(chan string, 1)}
	recorder.On("Record", mock.Anything, "AAAAA", mock.MatchedBy(func(d *playable.GameOverDetails) bool {
		return d.Loser == "Ada" && d.Reason == holdemshot.ReasonResigned
	})).Return(nil)

	pb := NewPitBoss(newTestPitBoss().logger, Settings{
		RNG:      &scriptedGenerator{values: []int{0, 0, 0, 0, 0}, fallback: rng.Seeded(2)},
		Recorder: recorder,
	})

	ada := newTestClient("Ada")
	bo := newTestClient("Bo")
	require.NoError(t, pb.FormMatch(ada.Player(), bo.Player(), 3))
	waitForKey(t, ada, "game")

	ada.ReceivedMessage(&playable.PayloadIn{Action: "resign"})
	waitForKey(t, ada, "gameOver")

	select {
	case code := <-recorder.recorded:
		assert.Equal(t, "AAAAA", code)
	case <-time.After(time.Second * 2):
		require.FailNow(t, "game was not recorded")
	}

	recorder.AssertExpectations(t)
}
