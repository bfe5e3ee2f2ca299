package workers

const (
	// OriginDirectory marks workers owned by the external worker
	// directory; OriginLocal marks workers added from this subsystem.
	OriginDirectory = "directory"
	OriginLocal     = "local"
)

type Identity struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty,omitempty"`
	Active    bool   `json:"active"`
	Origin    string `json:"origin"`

	// CanPieceRate is false for locally added workers: with no linkage
	// to completed-work records they can only be paid a fixed salary.
	CanPieceRate bool `json:"canPieceRate"`
}
