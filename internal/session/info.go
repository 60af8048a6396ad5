package session

import "time"

// SessionLog describes one transcript file on disk.
type SessionLog struct {
	SessionID   string    `json:"sessionId"`
	LogFilePath string    `json:"logFilePath"`
	ModifiedAt  time.Time `json:"modifiedAt"`
	Size        int64     `json:"size"`
}
