package domain

// ColorBucket is a discrete display category for a monthly rainfall total.
type ColorBucket int

const (
	BucketDry      ColorBucket = iota // < 50 mm
	BucketLight                       // 50-200 mm
	BucketModerate                    // 200-400 mm
	BucketHeavy                       // 400-600 mm
	BucketExtreme                     // > 600 mm
)

// Bucket thresholds in mm. A value equal to a threshold lands in the higher
// bucket: 49.9 is dry, 50.0 is light.
var bucketThresholds = [...]float64{50, 200, 400, 600}

var bucketHex = [...]string{
	BucketDry:      "#FFD700",
	BucketLight:    "#87CEEB",
	BucketModerate: "#1E90FF",
	BucketHeavy:    "#000080",
	BucketExtreme:  "#000000",
}

var bucketLabels = [...]string{
	BucketDry:      "< 50mm",
	BucketLight:    "50-200mm",
	BucketModerate: "200-400mm",
	BucketHeavy:    "400-600mm",
	BucketExtreme:  "> 600mm",
}

// BucketFor maps a rainfall amount to its display bucket. Pure function of
// the value; monotonic in mm.
func BucketFor(mm float64) ColorBucket {
	for i, threshold := range bucketThresholds {
		if mm < threshold {
			return ColorBucket(i)
		}
	}
	return BucketExtreme
}

// Hex returns the display color for the bucket.
func (b ColorBucket) Hex() string {
	if b < 0 || int(b) >= len(bucketHex) {
		return bucketHex[BucketDry]
	}
	return bucketHex[b]
}

// Label returns the legend text for the bucket.
func (b ColorBucket) Label() string {
	if b < 0 || int(b) >= len(bucketLabels) {
		return bucketLabels[BucketDry]
	}
	return bucketLabels[b]
}

// Buckets returns all buckets in ascending order, for legend rendering.
func Buckets() []ColorBucket {
	return []ColorBucket{BucketDry, BucketLight, BucketModerate, BucketHeavy, BucketExtreme}
}
