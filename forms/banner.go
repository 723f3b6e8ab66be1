package forms

type BannerDraft struct {
	Order int `form:"order"`
}

// ParseBanner validates a raw banner form. hasImage reports whether an
// upload accompanies the submission or the banner already has one.
func ParseBanner(get Getter, hasImage bool) (*BannerDraft, FieldErrors) {
	errs := FieldErrors{}
	draft := &BannerDraft{
		Order: intField(get, "order", errs),
	}
	if !hasImage {
		errs.Add("image", "This field is required")
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return draft, nil
}
