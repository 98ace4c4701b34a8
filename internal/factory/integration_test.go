package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/jmdjr/card-games/internal/model"
	"github.com/jmdjr/card-games/internal/sse"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) createPlayer(id, name string) model.Player {
	return model.Player{
		ID:          model.PlayerID(id),
		DisplayName: name,
		IsHuman:     true,
		IsGuest:     true,
		CreatedAt:   s.app.MockClock.Now(),
	}
}

// Test: Complete game flow from table creation through to the archived record
func (s *IntegrationSuite) TestCompleteGameFlow() {
	s.app.MockRandom.QueueString("TABLE1")

	// Step 1: Create a table
	table, err := s.app.SessionController.CreateTable(s.ctx, "Game Night", "standard")
	s.Require().NoError(err)
	s.Equal(model.TableID("TABLE1"), table.ID)
	s.Equal(model.GameStateWaiting, table.State)
	s.Equal(52, table.Piles["deck"].Size)

	// Step 2: Two players join
	alice := s.createPlayer("alice", "Alice")
	bob := s.createPlayer("bob", "Bob")
	s.Require().NoError(s.app.SessionController.JoinTable(s.ctx, table.ID, alice))
	s.Require().NoError(s.app.SessionController.JoinTable(s.ctx, table.ID, bob))

	// Step 3: Start the game
	s.Require().NoError(s.app.SessionController.StartGame(s.ctx, table.ID))
	snapshot, err := s.app.SessionController.GetTable(s.ctx, table.ID)
	s.Require().NoError(err)
	s.Equal(model.GameStateActive, snapshot.State)
	s.Len(snapshot.Players, 2)

	// Step 4: Alice draws from the deck into her hand
	accepted, err := s.app.SessionController.PerformAction(s.ctx, table.ID, alice.ID, model.Action{
		Type:      model.ActionDraw,
		SourceKey: "deck",
		TargetKey: "alice_hand",
	})
	s.Require().NoError(err)
	s.True(accepted)

	snapshot, err = s.app.SessionController.GetTable(s.ctx, table.ID)
	s.Require().NoError(err)
	s.Equal(51, snapshot.Piles["deck"].Size)
	s.Require().Equal(1, snapshot.Piles["alice_hand"].Size)

	// Step 5: Alice plays the drawn card to the play area
	card := snapshot.Piles["alice_hand"].CardIDs[0]
	accepted, err = s.app.SessionController.PerformAction(s.ctx, table.ID, alice.ID, model.Action{
		Type:      model.ActionPlay,
		SourceKey: "alice_hand",
		TargetKey: "play",
		CardIDs:   []model.CardID{card},
	})
	s.Require().NoError(err)
	s.True(accepted)

	// Step 6: Turn passes to Bob, who passes
	s.Require().NoError(s.app.SessionController.SetCurrentPlayer(s.ctx, table.ID, bob.ID))
	accepted, err = s.app.SessionController.PerformAction(s.ctx, table.ID, bob.ID, model.Action{
		Type: model.ActionPass,
	})
	s.Require().NoError(err)
	s.True(accepted)

	// Step 7: End the game and verify the archived record
	s.app.MockClock.Advance(30 * time.Minute)
	record, err := s.app.SessionController.EndGame(s.ctx, table.ID)
	s.Require().NoError(err)
	s.Equal(table.ID, record.TableID)
	s.Equal("standard", record.GameType)
	s.Len(record.Players, 2)
	s.Equal(30*time.Minute, record.EndedAt.Sub(record.StartedAt))

	records, err := s.app.SessionController.GetGameRecords(s.ctx, table.ID)
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal(record.ID, records[0].ID)

	// Step 8: The stored snapshot reflects the ended state
	stored, err := s.app.Storage.GetTableSnapshot(s.ctx, table.ID)
	s.Require().NoError(err)
	s.Equal(model.GameStateEnded, stored.State)
}

// Test: Leaving removes the player's piles from the table
func (s *IntegrationSuite) TestPlayerLeaveRemovesHand() {
	s.app.MockRandom.QueueString("TABLE1")

	table, _ := s.app.SessionController.CreateTable(s.ctx, "Leavers", "standard")
	alice := s.createPlayer("alice", "Alice")
	bob := s.createPlayer("bob", "Bob")
	_ = s.app.SessionController.JoinTable(s.ctx, table.ID, alice)
	_ = s.app.SessionController.JoinTable(s.ctx, table.ID, bob)

	err := s.app.SessionController.LeaveTable(s.ctx, table.ID, bob.ID)
	s.Require().NoError(err)

	snapshot, err := s.app.SessionController.GetTable(s.ctx, table.ID)
	s.Require().NoError(err)
	s.Equal([]model.PlayerID{alice.ID}, snapshot.Players)
	s.Contains(snapshot.Piles, "alice_hand")
	s.NotContains(snapshot.Piles, "bob_hand")
}

// Test: Closing a table deletes the snapshot but keeps completed-game records
func (s *IntegrationSuite) TestCloseTableKeepsRecords() {
	s.app.MockRandom.QueueString("TABLE1")

	table, _ := s.app.SessionController.CreateTable(s.ctx, "History", "standard")
	alice := s.createPlayer("alice", "Alice")
	_ = s.app.SessionController.JoinTable(s.ctx, table.ID, alice)
	_ = s.app.SessionController.StartGame(s.ctx, table.ID)

	record, err := s.app.SessionController.EndGame(s.ctx, table.ID)
	s.Require().NoError(err)

	s.Require().NoError(s.app.SessionController.CloseTable(s.ctx, table.ID))

	_, err = s.app.SessionController.GetTable(s.ctx, table.ID)
	s.ErrorIs(err, model.ErrSnapshotNotFound)

	records, err := s.app.Storage.GetGameRecordsForTable(s.ctx, table.ID)
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal(record.ID, records[0].ID)
}

// Test: Bot joins, takes its turn when processing reaches it, and hands
// the turn back to the human
func (s *IntegrationSuite) TestBotTurnProcessing() {
	s.app.MockRandom.QueueString("TABLE1")

	table, err := s.app.SessionController.CreateTable(s.ctx, "Bots", "standard")
	s.Require().NoError(err)

	alice := s.createPlayer("alice", "Alice")
	s.Require().NoError(s.app.SessionController.JoinTable(s.ctx, table.ID, alice))

	s.app.MockRandom.QueueString("bot1abcdefghijkl")
	bot, err := s.app.BotService.AddBotToTable(s.ctx, table.ID, "random")
	s.Require().NoError(err)
	s.False(bot.IsHuman)
	s.Equal("random", bot.BotStrategy)

	s.Require().NoError(s.app.SessionController.StartGame(s.ctx, table.ID))
	s.Require().NoError(s.app.SessionController.SetCurrentPlayer(s.ctx, table.ID, bot.ID))

	// The bot's hand is empty, so its strategy draws from the deck
	results, err := s.app.BotService.ProcessBotTurns(s.ctx, table.ID)
	s.Require().NoError(err)
	s.Require().Len(results, 1)
	s.Equal(bot.ID, results[0].PlayerID)
	s.Equal(model.ActionDraw, results[0].Action.Type)
	s.True(results[0].Accepted)

	// Turn advanced past the bot to the human, and the draw landed
	snapshot, err := s.app.SessionController.GetTable(s.ctx, table.ID)
	s.Require().NoError(err)
	s.Equal(alice.ID, snapshot.CurrentPlayerID)
	s.Equal(51, snapshot.Piles["deck"].Size)
	s.Equal(1, snapshot.Piles[string(bot.ID)+"_hand"].Size)
}

// Test: Add and remove a bot from a table
func (s *IntegrationSuite) TestAddRemoveBot() {
	s.app.MockRandom.QueueString("TABLE1")

	table, _ := s.app.SessionController.CreateTable(s.ctx, "Bots", "standard")
	alice := s.createPlayer("alice", "Alice")
	_ = s.app.SessionController.JoinTable(s.ctx, table.ID, alice)

	s.app.MockRandom.QueueString("bot1abcdefghijkl")
	bot, err := s.app.BotService.AddBotToTable(s.ctx, table.ID, "random")
	s.Require().NoError(err)

	snapshot, _ := s.app.SessionController.GetTable(s.ctx, table.ID)
	s.Len(snapshot.Players, 2)

	err = s.app.BotService.RemoveBotFromTable(s.ctx, table.ID, bot.ID)
	s.Require().NoError(err)

	snapshot, _ = s.app.SessionController.GetTable(s.ctx, table.ID)
	s.Len(snapshot.Players, 1)

	// Humans cannot be removed through the bot service
	err = s.app.BotService.RemoveBotFromTable(s.ctx, table.ID, alice.ID)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Test: Guest auth flow through the wired auth service
func (s *IntegrationSuite) TestGuestAuthFlow() {
	sess, err := s.app.AuthService.CreateGuestPlayer(s.ctx, "Alice")
	s.Require().NoError(err)
	s.True(sess.Player.IsGuest)
	s.NotEmpty(sess.Token)

	validated, err := s.app.AuthService.ValidateSession(sess.Token)
	s.Require().NoError(err)
	s.Equal(sess.Player.ID, validated.Player.ID)

	s.app.AuthService.InvalidateSession(sess.Token)
	_, err = s.app.AuthService.ValidateSession(sess.Token)
	s.Error(err)
}

// Test: Table events flow through the broadcaster to SSE hubs
func (s *IntegrationSuite) TestEventsReachHub() {
	s.app.MockRandom.QueueString("TABLE1")

	table, err := s.app.SessionController.CreateTable(s.ctx, "Streaming", "standard")
	s.Require().NoError(err)

	s.Require().NoError(s.app.Broadcaster.Attach(table.ID))
	hub := s.app.HubManager.GetHub(table.ID)
	s.Require().NotNil(hub)

	client := sse.NewClient(hub, "watcher")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	alice := s.createPlayer("alice", "Alice")
	s.Require().NoError(s.app.SessionController.JoinTable(s.ctx, table.ID, alice))
	time.Sleep(10 * time.Millisecond)

	// Joining registers the player's hand pile and seats them, so the
	// client sees at least one event
	select {
	case msg := <-client.Send():
		s.Contains(string(msg), "event: ")
	case <-time.After(time.Second):
		s.Fail("no event received")
	}

	s.app.Broadcaster.Detach(table.ID)
	s.Nil(s.app.HubManager.GetHub(table.ID))
}
