package service

import "example.com/packpal/internal/models"

// Estimate returns the sustainability metrics assigned to a new package:
// waste reduced in grams and cost saved in currency units. The table is
// deterministic per package type so that created packages are reproducible.
func Estimate(t models.PackageType) (wasteReduced, costSaved int) {
	switch t {
	case models.PackageEcoFriendly:
		return 450, 18
	case models.PackageCompact:
		return 320, 12
	case models.PackageBulk:
		return 520, 22
	case models.PackageCustom:
		return 350, 15
	default: // Standard
		return 250, 8
	}
}
