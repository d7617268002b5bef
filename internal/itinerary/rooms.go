package itinerary

// Room allocation over a lodging option. The invariant maintained here:
// 0 <= AvailableBedrooms <= TotalBedrooms after every operation, with one
// bedroom consumed per guest. The host is not a guest and holds no bedroom.

// JoinLodging claims a bedroom for userID. A repeat join is an idempotent
// success, not an error.
func JoinLodging(l *Lodging, userID string) (bool, error) {
	for _, id := range l.GuestIDs {
		if id == userID {
			return false, nil
		}
	}
	if l.AvailableBedrooms <= 0 {
		return false, ErrNoCapacity
	}
	l.GuestIDs = append(l.GuestIDs, userID)
	l.AvailableBedrooms--
	return true, nil
}

// LeaveLodging releases userID's bedroom. Leaving a lodging one never
// joined is a no-op. The increment is capped at TotalBedrooms in case
// capacity was edited downward while occupied.
func LeaveLodging(l *Lodging, userID string) bool {
	for i, id := range l.GuestIDs {
		if id == userID {
			l.GuestIDs = append(l.GuestIDs[:i], l.GuestIDs[i+1:]...)
			if l.AvailableBedrooms < l.TotalBedrooms {
				l.AvailableBedrooms++
			}
			return true
		}
	}
	return false
}

// SetLodgingCapacity is the administrative override used by edit forms.
// Available is clamped into [0, total]; existing guests are never evicted,
// so an edit below the occupied count leaves zero availability rather than
// stranding anyone.
func SetLodgingCapacity(l *Lodging, total, available int) {
	if total < 0 {
		total = 0
	}
	if available > total {
		available = total
	}
	if available < 0 {
		available = 0
	}
	l.TotalBedrooms = total
	l.AvailableBedrooms = available
}
