package calendar

import (
	"fmt"
	"strings"
)

// BusinessDayConvention selects how a non-business day is moved onto a business day.
type BusinessDayConvention string

const (
	Unadjusted                 BusinessDayConvention = "UNADJUSTED"
	Following                  BusinessDayConvention = "FOLLOWING"
	ModifiedFollowing          BusinessDayConvention = "MODIFIED_FOLLOWING"
	Preceding                  BusinessDayConvention = "PRECEDING"
	ModifiedPreceding          BusinessDayConvention = "MODIFIED_PRECEDING"
	HalfMonthModifiedFollowing BusinessDayConvention = "HALF_MONTH_MODIFIED_FOLLOWING"
	Nearest                    BusinessDayConvention = "NEAREST"
)

var conventionAliases = map[string]BusinessDayConvention{
	"NONE": Unadjusted,
	"U":    Unadjusted,
	"F":    Following,
	"MF":   ModifiedFollowing,
	"P":    Preceding,
	"MP":   ModifiedPreceding,
	"HMMF": HalfMonthModifiedFollowing,
	"N":    Nearest,
}

// ParseBusinessDayConvention accepts the canonical names in any case, with
// spaces, dashes or no separators ("Modified Following", "modifiedfollowing")
// and the usual short forms ("MF").
func ParseBusinessDayConvention(s string) (BusinessDayConvention, error) {
	key := strings.ToUpper(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	if c, ok := conventionAliases[key]; ok {
		return c, nil
	}
	squashed := strings.ReplaceAll(key, "_", "")
	for _, c := range []BusinessDayConvention{
		Unadjusted, Following, ModifiedFollowing, Preceding,
		ModifiedPreceding, HalfMonthModifiedFollowing, Nearest,
	} {
		if squashed == strings.ReplaceAll(string(c), "_", "") {
			return c, nil
		}
	}
	return "", fmt.Errorf("ParseBusinessDayConvention: %q: %w", s, ErrUnknownConvention)
}
