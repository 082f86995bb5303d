package entity

// Tipos de tarea operativa.
const (
	TaskCrearBoletas   = "CREAR BOLETAS"
	TaskCrearFacturas  = "CREAR FACTURAS"
	TaskPagosVencidos  = "PAGOS VENCIDOS"
	TaskAdministrativa = "TAREA ADMINISTRATIVA"
)

// Estados y frecuencias de tarea.
const (
	TaskStatusPendiente = "pendiente"
	TaskStatusRealizada = "realizada"

	FrequencyUnico     = "unico"
	FrequencyConstante = "constante"
)

// OperationalTask tarea del calendario operativo.
// Date es la fecha ancla. Una tarea "constante" se repite el mismo día de cada mes desde el ancla
// y su avance se registra en CompletedDates; una tarea "unico" usa sólo Status.
type OperationalTask struct {
	ID             ID       `json:"id"`
	Date           string   `json:"date"`
	Type           string   `json:"type"`
	Description    string   `json:"description,omitempty"`
	Status         string   `json:"status"`
	Frequency      string   `json:"frequency,omitempty"`
	CompletedDates []string `json:"completedDates,omitempty"`
}

// IsRecurring indica frecuencia "constante". Frecuencia vacía equivale a "unico".
func (t OperationalTask) IsRecurring() bool {
	return t.Frequency == FrequencyConstante
}
