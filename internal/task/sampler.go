package task

import (
	"math/rand/v2"

	"github.com/ovaphlow/pitchfork/service-quest-go/internal/task/entity"
)

// sample picks n distinct tasks uniformly at random using perm, which must
// return a permutation of [0, len). It fails when the catalog is too small.
func sample(catalog []entity.Task, n int, perm func(int) []int) ([]entity.Task, error) {
	if len(catalog) < n {
		return nil, ErrInsufficientTasks
	}
	if perm == nil {
		perm = rand.Perm
	}
	out := make([]entity.Task, 0, n)
	for _, i := range perm(len(catalog))[:n] {
		out = append(out, catalog[i])
	}
	return out, nil
}
