package models

// TimeBand groups hours of the day for customer affinity.
type TimeBand string

const (
	TimeBandMorning   TimeBand = "MORNING"
	TimeBandLunch     TimeBand = "LUNCH"
	TimeBandAfternoon TimeBand = "AFTERNOON"
	TimeBandOther     TimeBand = "OTHER"
)

// BandForHour maps an hour to its band: 08-11 morning, 12-13 lunch, 14-17 afternoon.
func BandForHour(hour int) TimeBand {
	switch {
	case hour >= 8 && hour <= 11:
		return TimeBandMorning
	case hour >= 12 && hour <= 13:
		return TimeBandLunch
	case hour >= 14 && hour <= 17:
		return TimeBandAfternoon
	default:
		return TimeBandOther
	}
}

// LoyaltyTier is derived from booking count only.
type LoyaltyTier string

const (
	LoyaltyNew    LoyaltyTier = "NEW"
	LoyaltyBronze LoyaltyTier = "BRONZE"
	LoyaltySilver LoyaltyTier = "SILVER"
	LoyaltyGold   LoyaltyTier = "GOLD"
)

// WeekdayWeight counts bookings on a weekday.
type WeekdayWeight struct {
	Weekday Weekday `json:"weekday"`
	Count   int     `json:"count"`
}

// TimeBandWeight counts bookings in a time band.
type TimeBandWeight struct {
	Band  TimeBand `json:"band"`
	Count int      `json:"count"`
}

// PreferenceProfile summarises one customer's booking habits.
type PreferenceProfile struct {
	CustomerID      string           `json:"customerId"`
	BookingCount    int              `json:"bookingCount"`
	LoyaltyTier     LoyaltyTier      `json:"loyaltyTier"`
	WeekdayWeights  []WeekdayWeight  `json:"weekdayWeights"`
	TimeBandWeights []TimeBandWeight `json:"timeBandWeights"`
}

// PrefersWeekday reports whether the customer has booked on w before.
func (p *PreferenceProfile) PrefersWeekday(w Weekday) bool {
	if p == nil {
		return false
	}
	for _, ww := range p.WeekdayWeights {
		if ww.Weekday == w && ww.Count > 0 {
			return true
		}
	}
	return false
}

// PrefersBand reports whether the customer has booked in band before.
func (p *PreferenceProfile) PrefersBand(band TimeBand) bool {
	if p == nil {
		return false
	}
	for _, bw := range p.TimeBandWeights {
		if bw.Band == band && bw.Count > 0 {
			return true
		}
	}
	return false
}

// TopWeekdays returns up to n weekdays in descending frequency.
func (p *PreferenceProfile) TopWeekdays(n int) []Weekday {
	if p == nil {
		return nil
	}
	out := make([]Weekday, 0, n)
	for _, ww := range p.WeekdayWeights {
		if len(out) == n {
			break
		}
		out = append(out, ww.Weekday)
	}
	return out
}
