// Package badge emits the verification badge: a QR code encoding the
// public verification URL of a certificate.
//
// Every layout encodes the same payload the same way; only placement and
// size differ between callers.
package badge

import (
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/certifyme/certrender/pkg/core/render/visual"
)

// PendingID stands in for a certificate that has no id yet.
const PendingID = "pending"

// Role is the visual role of badge nodes.
const Role = "badge"

// URL returns "{origin}/verify/{id}". Trailing slashes on origin are
// dropped and an empty id becomes [PendingID].
func URL(origin, id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		id = PendingID
	}
	return strings.TrimRight(strings.TrimSpace(origin), "/") + "/verify/" + url.PathEscape(id)
}

// Encode returns the module matrix for payload at medium error correction,
// without a quiet zone.
func Encode(payload string) ([][]bool, error) {
	q, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	q.DisableBorder = true
	return q.Bitmap(), nil
}

// Node builds the badge for id at (x, y) with the given side length. If
// the payload cannot be encoded the node draws a labelled box instead.
func Node(origin, id string, x, y, size float64) *visual.Code {
	payload := URL(origin, id)
	c := &visual.Code{
		Base:       visual.Base{Role: Role},
		X:          x,
		Y:          y,
		Size:       size,
		Payload:    payload,
		Color:      "#000000",
		Background: "#FFFFFF",
	}
	modules, err := Encode(payload)
	if err != nil {
		c.Label = "QR"
		return c
	}
	c.Modules = modules
	return c
}
