package application

import "time"

func domainNow() time.Time {
	return time.Now().UTC()
}
