// utils/referral.go
package utils

import (
	"fmt"
	"strings"
)

// BuildReferralURL produces the payload encoded into a referral QR code:
// <origin>/qr/<userId> or <origin>/qr/<userId>/<missionId>.
func BuildReferralURL(origin, userID, missionID string) string {
	origin = strings.TrimSuffix(origin, "/")
	if missionID == "" {
		return fmt.Sprintf("%s/qr/%s", origin, userID)
	}
	return fmt.Sprintf("%s/qr/%s/%s", origin, userID, missionID)
}
