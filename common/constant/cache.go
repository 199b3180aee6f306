package constant

import "time"

const (
	AdminTokenKey      = "admin:token:%s"
	BookingConfirmLock = "booking:confirm_lock:%s"
)

const (
	AdminTokenDefaultTTL         = 12 * time.Hour
	BookingConfirmLockDefaultTTL = 1 * time.Minute
)
