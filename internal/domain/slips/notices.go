package slips

import "errors"

// Level classifies a notice for the client.
type Level string

const (
	LevelError   Level = "error"
	LevelSuccess Level = "success"
)

// Notice is a user-facing outcome of a slip action. Failed guards return one as an error
// and leave the slip untouched.
type Notice struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Level   Level  `json:"level"`
}

func (n *Notice) Error() string {
	return n.Message
}

var (
	ErrMatchEnded      = &Notice{Code: "match_ended", Message: "Match ended, cannot add match to slip", Level: LevelError}
	ErrOddsUnavailable = &Notice{Code: "odds_unavailable", Message: "Odds not available for this match", Level: LevelError}
	ErrMatchInSlip     = &Notice{Code: "match_in_slip", Message: "Match already in slip", Level: LevelError}
	ErrPoolLocked      = &Notice{Code: "pool_locked", Message: "You cannot make changes to the pool", Level: LevelError}
	ErrLoginRequired   = &Notice{Code: "login_required", Message: "Login to create bet slip", Level: LevelError}
	ErrEmptySlip       = &Notice{Code: "empty_slip", Message: "No matches in slip", Level: LevelError}
	ErrNotInSlip       = &Notice{Code: "not_in_slip", Message: "Selection not in slip", Level: LevelError}
	ErrUnknownMatch    = &Notice{Code: "unknown_match", Message: "Match not found", Level: LevelError}
	ErrInvalidKind     = &Notice{Code: "invalid_selection", Message: "Selection must be home, draw or away", Level: LevelError}

	NoticeSlipCreated = &Notice{Code: "slip_created", Message: "Slip successfully created", Level: LevelSuccess}
)

// AsNotice unwraps err into a Notice.
func AsNotice(err error) (*Notice, bool) {
	var n *Notice
	if errors.As(err, &n) {
		return n, true
	}
	return nil, false
}
