package bookshelf

import "math/rand/v2"

// DefaultImages are the placeholder covers assigned to new books.
var DefaultImages = []string{
	"foto/buku1.png",
	"foto/buku2.png",
	"foto/buku3.png",
	"foto/buku4.png",
}

// PickImage chooses one of images uniformly using r. It returns "" for an
// empty list.
func PickImage(images []string, r *rand.Rand) string {
	if len(images) == 0 {
		return ""
	}
	return images[r.IntN(len(images))]
}

// ImagePicker binds an image list to a randomness source.
type ImagePicker struct {
	images []string
	rng    *rand.Rand
}

// NewImagePicker returns a picker over images. A nil src gets a randomly
// seeded PCG source; pass a fixed one for reproducible picks.
func NewImagePicker(images []string, src rand.Source) *ImagePicker {
	if len(images) == 0 {
		images = DefaultImages
	}
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &ImagePicker{
		images: append([]string(nil), images...),
		rng:    rand.New(src),
	}
}

// Pick returns the next image.
func (p *ImagePicker) Pick() string { return PickImage(p.images, p.rng) }
