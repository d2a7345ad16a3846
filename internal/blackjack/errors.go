package blackjack

import "errors"

// Rule violations. Commands wrap these in a *RuleError; the game state is
// left untouched whenever one is returned.
var (
	ErrInvalidBet        = errors.New("bet must be a positive amount")
	ErrInsufficientFunds = errors.New("bet exceeds wallet balance")
	ErrBetAlreadyPlaced  = errors.New("a bet has already been placed")
	ErrNoBet             = errors.New("no bet placed")
	ErrRoundInProgress   = errors.New("round in progress")
	ErrRoundSettled      = errors.New("round settled, reset before the next bet")
	ErrNotPlayerTurn     = errors.New("not the player's turn")
	ErrAcePending        = errors.New("an ace is waiting for a value")
	ErrNoPendingAce      = errors.New("no ace is waiting for a value")
)

var errorCodes = map[error]string{
	ErrInvalidBet:        "invalid_bet",
	ErrInsufficientFunds: "insufficient_funds",
	ErrBetAlreadyPlaced:  "bet_already_placed",
	ErrNoBet:             "no_bet",
	ErrRoundInProgress:   "round_in_progress",
	ErrRoundSettled:      "round_settled",
	ErrNotPlayerTurn:     "not_player_turn",
	ErrAcePending:        "ace_pending",
	ErrNoPendingAce:      "no_pending_ace",
}

// RuleError reports a command rejected by the rules
type RuleError struct {
	Command string
	Err     error
}

func (e *RuleError) Error() string {
	return e.Command + ": " + e.Err.Error()
}

func (e *RuleError) Unwrap() error {
	return e.Err
}

// Code returns a stable machine readable code for the violation
func (e *RuleError) Code() string {
	if code, ok := errorCodes[e.Err]; ok {
		return code
	}
	return "rule_violation"
}

// IsRuleError reports whether err is a rejected command rather than an
// internal failure.
func IsRuleError(err error) bool {
	var re *RuleError
	return errors.As(err, &re)
}

// ErrorCode returns the RuleError code for err, or "internal" for any
// other error.
func ErrorCode(err error) string {
	var re *RuleError
	if errors.As(err, &re) {
		return re.Code()
	}
	return "internal"
}

func reject(command string, err error) error {
	return &RuleError{Command: command, Err: err}
}
