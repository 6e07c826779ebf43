package model

import "time"

// Estado values a document (or movement) can carry. The backend owns the set;
// the client treats estado as an open string and only recognizes these.
const (
	EstadoEnTramite  = "EN TRAMITE"
	EstadoFinalizado = "FINALIZADO"
	EstadoRechazado  = "RECHAZADO"
	EstadoArchivado  = "ARCHIVADO"
)

const (
	EstadoActivo   = "ACTIVO"
	EstadoInactivo = "INACTIVO"
)

const (
	RolAdministrador = "Administrador"
	RolUsuario       = "Usuario"
)

type Area struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
	Estado string `json:"estado,omitempty"`
}

type TipoDocumento struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
	Estado string `json:"estado,omitempty"`
}

// Documento is the routable unit. All fields are server-owned; the client holds
// ephemeral copies scoped to a view and replaced wholesale on re-fetch.
type Documento struct {
	ID            int            `json:"id"`
	CodigoUnico   string         `json:"codigo_unico"`
	NroDocumento  string         `json:"nro_documento,omitempty"`
	NroLibro      *string        `json:"nro_libro"`
	CreatedAt     time.Time      `json:"created_at"`
	TipoDocumento *TipoDocumento `json:"tipo_documento"`
	Asunto        string         `json:"asunto"`
	NroFolios     int            `json:"nro_folios"`
	AreaOrigen    *Area          `json:"area_origen"`
	AreaActual    *Area          `json:"area_actual"`
	ArchivoPDF    *string        `json:"archivo_pdf"`
	EstadoGeneral string         `json:"estado_general"`

	// Set when this document was created as a response to another one. A reply
	// is terminal from the recipient's perspective: it is never derivable,
	// answerable, or finalizable from the inbox.
	DocumentoRespuestaID *int `json:"documento_respuesta_id"`

	// True once the holding area ran recepcionar on it.
	FueRecibidoEnAreaActual bool `json:"fue_recibido_en_area_actual"`

	LatestMovement *Movimiento  `json:"latestMovement"`
	Movimientos    []Movimiento `json:"movimientos,omitempty"`
}

// Movimiento is a single hop in a document's routing history. When the backend
// embeds it in a history view it enriches it with parent-document fields.
type Movimiento struct {
	ID               int       `json:"id"`
	CreatedAt        time.Time `json:"created_at"`
	AreaOrigen       *Area     `json:"area_origen"`
	AreaDestino      *Area     `json:"area_destino"`
	ArchivoAdjunto   *string   `json:"archivo_adjunto"`
	EstadoMovimiento string    `json:"estado_movimiento"`
	Proveido         string    `json:"proveido"`

	// Parent-document fields, present only in history/seguimiento payloads.
	CodigoUnico       string `json:"codigo_unico,omitempty"`
	DocumentoCompleto string `json:"documento_completo,omitempty"`
	Asunto            string `json:"asunto,omitempty"`
	NroFolios         int    `json:"nro_folios,omitempty"`
}

type Empleado struct {
	Nombres         string `json:"nombres"`
	ApellidoPaterno string `json:"apellido_paterno"`
	ApellidoMaterno string `json:"apellido_materno"`
	DNI             string `json:"dni"`
	Email           string `json:"email"`
}

// Usuario is the administrative user entity (admin screens), distinct from the
// session user.
type Usuario struct {
	ID            int       `json:"id"`
	NombreUsuario string    `json:"nombre_usuario"`
	Rol           string    `json:"rol"`
	Estado        string    `json:"estado"`
	CreatedAt     time.Time `json:"created_at"`
	Empleado      Empleado  `json:"empleado"`
	PrimaryAreaID int       `json:"primary_area_id"`
	PrimaryArea   *Area     `json:"primary_area"`
	Areas         []Area    `json:"areas"`
}

// SessionUser is the authenticated identity returned by /auth/login and
// /auth/me.
type SessionUser struct {
	ID            int    `json:"id"`
	NombreUsuario string `json:"nombre_usuario"`
	Rol           string `json:"rol"`
	PrimaryAreaID int    `json:"primary_area_id"`
	PrimaryArea   *Area  `json:"primary_area,omitempty"`
	Areas         []Area `json:"areas"`
}

func (u *SessionUser) IsAdmin() bool {
	return u != nil && u.Rol == RolAdministrador
}
