package entity

import "time"

// Worker trabajador del taller (vendedor, almacenero...). Puede vincularse a un User.
type Worker struct {
	ID        int64
	Names     string
	Surnames  string
	DNI       string
	Phone     string
	Email     string
	Address   string
	Position  string
	Estado    bool
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName nombres y apellidos.
func (w *Worker) FullName() string {
	if w.Surnames == "" {
		return w.Names
	}
	return w.Names + " " + w.Surnames
}
