package bot

import "github.com/jmdjr/card-games/internal/model"

// Strategy decides what a bot does on its turn, given the table's
// observational snapshot
type Strategy interface {
	// ChooseAction picks the bot's next intent
	ChooseAction(snapshot *model.TableSnapshot, playerID model.PlayerID) model.Action
}
