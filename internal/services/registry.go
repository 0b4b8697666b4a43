package services

// Registry holds the qualified participants of the current session in
// qualification order, plus the per-identity like accumulator. The
// accumulator is independent of membership: it keeps counting for
// identities that are not (or are already) members, until cleared.
//
// Registry is not safe for concurrent use on its own; GiveawayService
// serializes all access.
type Registry struct {
	members []string
	index   map[string]int
	likes   map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		index: make(map[string]int),
		likes: make(map[string]int),
	}
}

// Add appends an identity and reports whether it was newly added. Adding
// an existing member is a no-op.
func (r *Registry) Add(identity string) bool {
	if _, ok := r.index[identity]; ok {
		return false
	}
	r.index[identity] = len(r.members)
	r.members = append(r.members, identity)
	return true
}

// Contains reports whether the identity is a member.
func (r *Registry) Contains(identity string) bool {
	_, ok := r.index[identity]
	return ok
}

// IndexOf returns the stable insertion-order index of the identity, or -1
// if it is not a member.
func (r *Registry) IndexOf(identity string) int {
	i, ok := r.index[identity]
	if !ok {
		return -1
	}
	return i
}

// Size returns the number of members.
func (r *Registry) Size() int {
	return len(r.members)
}

// Members returns a copy of the members in qualification order.
func (r *Registry) Members() []string {
	out := make([]string, len(r.members))
	copy(out, r.members)
	return out
}

// At returns the member at the given insertion-order index.
func (r *Registry) At(i int) string {
	return r.members[i]
}

// AddLikes adds count likes for the identity and returns the new running
// total.
func (r *Registry) AddLikes(identity string, count int) int {
	r.likes[identity] += count
	return r.likes[identity]
}

// Likes returns the running like total for the identity.
func (r *Registry) Likes(identity string) int {
	return r.likes[identity]
}

// Clear empties both the membership and the like accumulator.
func (r *Registry) Clear() {
	r.members = nil
	r.index = make(map[string]int)
	r.likes = make(map[string]int)
}
