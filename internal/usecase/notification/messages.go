package notification

import "fmt"

// FailedMessage formats the terminal error notification
func FailedMessage(reason string) string {
	return fmt.Sprintf(msgAutomationFailed, reason)
}
