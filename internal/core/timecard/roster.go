package timecard

// Roster は識別子から Employee への挿入順を保持する対応表です。
type Roster struct {
	order     []string
	employees map[string]*Employee
}

// NewRoster は空の Roster を生成します。
func NewRoster() *Roster {
	return &Roster{employees: make(map[string]*Employee)}
}

// Resolve は識別子に対応する Employee を返し、未登録であれば末尾に追加します。
func (r *Roster) Resolve(identity string) *Employee {
	if emp, ok := r.employees[identity]; ok {
		return emp
	}
	emp := NewEmployee(identity)
	r.employees[identity] = emp
	r.order = append(r.order, identity)
	return emp
}

// Get は登録済みの Employee を返します。
func (r *Roster) Get(identity string) (*Employee, bool) {
	emp, ok := r.employees[identity]
	return emp, ok
}

// Len は登録済みの社員数を返します。
func (r *Roster) Len() int {
	return len(r.order)
}

// Identities は登録順の識別子一覧を返します。
func (r *Roster) Identities() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Employees は登録順の Employee 一覧を返します。
func (r *Roster) Employees() []*Employee {
	out := make([]*Employee, 0, len(r.order))
	for _, identity := range r.order {
		out = append(out, r.employees[identity])
	}
	return out
}
