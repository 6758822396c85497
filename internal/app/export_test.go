package app

var (
	StartAll   = startAll
	StopAll    = stopAll
	VerifyWith = verify
)

type Started = started
