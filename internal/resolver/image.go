package resolver

import (
	"math/rand"

	"blinkbot/pkg"
)

// ImageRecognizer fakes product recognition. It never inspects the image:
// every upload resolves to the same demo sneaker with randomized price and
// confidence, which is all the prototype needs.
type ImageRecognizer struct {
	rng *rand.Rand
}

func NewImageRecognizer(rng *rand.Rand) *ImageRecognizer {
	return &ImageRecognizer{rng: rng}
}

// Recognize returns the fixed demo product for any image reference.
func (r *ImageRecognizer) Recognize(imageRef string) pkg.Item {
	shipping := 0
	if r.rng.Float64() > 0.6 {
		shipping = r.rng.Intn(15) + 5
	}
	return pkg.Item{
		Title:        "Air Jordan 14",
		Price:        200 + r.rng.Intn(40) - 20,
		Shipping:     shipping,
		Brand:        "Nike",
		Category:     "shoes",
		Availability: "In Stock",
		Authenticity: "Brand New",
		DeliveryDate: deliveryEstimates[r.rng.Intn(len(deliveryEstimates))],
		Description:  "Classic Nike Air Jordan 14 basketball shoes identified from your image",
		Confidence:   85 + r.rng.Intn(15),
	}
}
