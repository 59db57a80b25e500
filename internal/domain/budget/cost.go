package budget

import (
	"unicode/utf16"

	"notify-dispatch/internal/domain/notification"
)

// Per-send rates in micro-currency units (1e-6 of the billing currency).
// SMS is priced per segment, the rest per message.
const (
	DefaultEmailMicro      = 950
	DefaultSMSSegmentMicro = 7900
	DefaultPushMicro       = 0
	DefaultInAppMicro      = 0
)

// CostTable maps channels to per-unit rates. Zero rates are legitimate:
// push and in-app ride on infrastructure already paid for.
type CostTable struct {
	EmailMicro      int64
	SMSSegmentMicro int64
	PushMicro       int64
	InAppMicro      int64
}

func DefaultCostTable() CostTable {
	return CostTable{
		EmailMicro:      DefaultEmailMicro,
		SMSSegmentMicro: DefaultSMSSegmentMicro,
		PushMicro:       DefaultPushMicro,
		InAppMicro:      DefaultInAppMicro,
	}
}

// CostMicro prices one send of the rendered body over the given channel.
// SMS cost depends on the segment count of the final rendered text, so it
// must be computed after template rendering, not at enqueue time.
func (t CostTable) CostMicro(channel notification.Channel, body string) int64 {
	switch channel {
	case notification.ChannelEmail:
		return t.EmailMicro
	case notification.ChannelSMS:
		return t.SMSSegmentMicro * int64(Segments(body))
	case notification.ChannelPush:
		return t.PushMicro
	case notification.ChannelInApp:
		return t.InAppMicro
	default:
		return 0
	}
}

// GSM 03.38 basic character set. Characters outside this set (and the
// escaped extension set) force the whole message into UCS-2 encoding.
var gsmBasic = map[rune]struct{}{}

// Extension characters encode as an escape plus the character, costing two
// septets each.
var gsmExtension = map[rune]struct{}{}

func init() {
	const basic = "@£$¥èéùìòÇ\nØø\rÅåΔ_ΦΓΛΩΠΨΣΘΞÆæßÉ !\"#¤%&'()*+,-./0123456789:;<=>?" +
		"¡ABCDEFGHIJKLMNOPQRSTUVWXYZÄÖÑÜ§¿abcdefghijklmnopqrstuvwxyzäöñüà"
	for _, r := range basic {
		gsmBasic[r] = struct{}{}
	}
	for _, r := range "^{}\\[~]|€" {
		gsmExtension[r] = struct{}{}
	}
}

const (
	gsmSingleSeptets = 160
	gsmMultiSeptets  = 153
	ucs2SingleUnits  = 70
	ucs2MultiUnits   = 67
)

// Segments counts the SMS segments the body splits into. GSM-7 bodies fit
// 160 septets in a single segment and 153 per segment once concatenation
// headers are needed; UCS-2 bodies fit 70 and 67 UTF-16 code units.
func Segments(body string) int {
	if body == "" {
		return 1
	}

	septets := 0
	gsm := true
	for _, r := range body {
		if _, ok := gsmBasic[r]; ok {
			septets++
			continue
		}
		if _, ok := gsmExtension[r]; ok {
			septets += 2
			continue
		}
		gsm = false
		break
	}

	if gsm {
		if septets <= gsmSingleSeptets {
			return 1
		}
		return (septets + gsmMultiSeptets - 1) / gsmMultiSeptets
	}

	units := 0
	for _, r := range body {
		units += len(utf16.Encode([]rune{r}))
	}
	if units <= ucs2SingleUnits {
		return 1
	}
	return (units + ucs2MultiUnits - 1) / ucs2MultiUnits
}
