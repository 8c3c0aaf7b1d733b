package logincode

import "context"

// ListLoginCodesByEmail returns every stored code for email, for assertions.
func (r *InMemoryRepository) ListLoginCodesByEmail(ctx context.Context, email string) ([]LoginCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []LoginCode
	for _, lc := range r.codes {
		if lc.Email == email {
			out = append(out, *lc)
		}
	}
	return out, nil
}
