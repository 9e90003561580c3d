package lesson

import (
	"github.com/abhisek/lingua/internal/gateway"
	"github.com/abhisek/lingua/internal/lesson"
)

// callDoneMsg carries the result of one model call back to the screen.
type callDoneMsg struct {
	Call   lesson.PendingCall
	Result gateway.Result
}
