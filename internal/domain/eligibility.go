package domain

// CanAccept decides whether viewer may accept req. profile is the viewer's
// donor profile and may be nil.
func CanAccept(viewer *User, profile *DonorProfile, req *BloodRequest) bool {
	if viewer == nil || req == nil {
		return false
	}
	if !viewer.IsDonor() {
		return false
	}
	if req.Status != RequestStatusPending {
		return false
	}
	if profile == nil || profile.UserID != viewer.ID {
		return false
	}
	return profile.IsAvailable
}
