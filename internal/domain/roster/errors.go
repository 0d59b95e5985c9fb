package roster

import "errors"

var (
	ErrSlotNotFound          = errors.New("no open roster slot for player on team")
	ErrSlotAlreadyOpen       = errors.New("player already has an open roster slot on team")
	ErrIllegalPositionChange = errors.New("illegal position change")
	ErrPositionOccupied      = errors.New("position is already occupied")
	ErrInvalidEffectiveDate  = errors.New("invalid effective date")
	ErrUnknownPosition       = errors.New("unknown roster position")
	ErrInvalidSwap           = errors.New("invalid swap")
)
