package value

// Array is an ordered sequence of values. It has no holes: every slot holds
// a non-Undefined value.
type Array struct {
	Elements []Value
}

func NewArray(elements ...Value) *Array {
	if elements == nil {
		elements = []Value{}
	}
	return &Array{Elements: elements}
}

func (*Array) Kind() Kind { return KindArray }
func (*Array) sealed()    {}

func (a *Array) Len() int {
	return len(a.Elements)
}

// At returns the element at index, or false when index is out of range.
func (a *Array) At(index int) (Value, bool) {
	if index < 0 || index >= len(a.Elements) {
		return nil, false
	}
	return a.Elements[index], true
}

// Member is one key/value pair of an Object.
type Member struct {
	Key   string
	Value Value
}

// Object is an ordered sequence of members. Keys are not unique; lookups
// return the last member carrying the key.
type Object struct {
	Members []Member
}

func NewObject(members ...Member) *Object {
	if members == nil {
		members = []Member{}
	}
	return &Object{Members: members}
}

func (*Object) Kind() Kind { return KindObject }
func (*Object) sealed()    {}

func (o *Object) Len() int {
	return len(o.Members)
}

// Lookup returns the index of the last member whose key equals key.
func (o *Object) Lookup(key string) (int, bool) {
	found := -1
	for i := range o.Members {
		if o.Members[i].Key == key {
			found = i
		}
	}
	return found, found >= 0
}

// Get returns the value of the last member whose key equals key.
func (o *Object) Get(key string) (Value, bool) {
	index, ok := o.Lookup(key)
	if !ok {
		return nil, false
	}
	return o.Members[index].Value, true
}

// Keys returns all keys in storage order, duplicates included.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.Members))
	for i, member := range o.Members {
		keys[i] = member.Key
	}
	return keys
}
