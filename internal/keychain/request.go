package keychain

// DefaultDepartment is the fallback department id ("DJIFly") sent to the
// keychain service when the file's own Auxiliary Version department is
// unknown or absent.
const DefaultDepartment byte = 3

// EncodedFeaturePoint is one ciphertext awaiting resolution, tagged with the
// FeaturePoint it was classified under. Shape mirrors the request wire
// format's array elements.
type EncodedFeaturePoint struct {
	FeaturePoint  FeaturePoint `json:"featurePoint"`
	AesCiphertext string       `json:"aesCiphertext"`
}

// Request is the body sent to the external keychain HTTP service: a version,
// a department id, and an ordered list of ciphertext groups, one per
// Recover-delimited key group observed in the file.
type Request struct {
	Version       uint16                  `json:"version"`
	Department    byte                    `json:"department"`
	KeychainArray [][]EncodedFeaturePoint `json:"keychainsArray"`
}

// Builder accumulates EncodedFeaturePoint entries into groups as pass 1
// streams raw records with an empty keychain. Call PushCiphertext for each
// KeyStorage record and CloseGroup on each Recover boundary marker; call
// Request at the end to retrieve the finished groups (the builder always
// keeps the current, possibly-empty, trailing group in the result).
type Builder struct {
	version    uint16
	department byte
	groups     [][]EncodedFeaturePoint
	current    []EncodedFeaturePoint
}

// NewBuilder starts a request builder seeded with the version/department
// defaults read from the file's second Auxiliary (Version) block.
func NewBuilder(version uint16, department byte) *Builder {
	return &Builder{version: version, department: department}
}

// PushCiphertext appends one KeyStorage record's (feature point, ciphertext)
// pair to the currently open group.
func (b *Builder) PushCiphertext(fp FeaturePoint, base64Ciphertext string) {
	b.current = append(b.current, EncodedFeaturePoint{
		FeaturePoint:  fp,
		AesCiphertext: base64Ciphertext,
	})
}

// CloseGroup closes the currently open group (even if empty) and starts a
// new one. Called on each Recover / KeyStorageRecover boundary marker.
func (b *Builder) CloseGroup() {
	b.groups = append(b.groups, b.current)
	b.current = nil
}

// Request finalizes the builder into the wire request shape. The trailing
// in-progress group (possibly empty, if the file ended without a final
// Recover marker) is always included, matching the original's "final group
// always pushed" behavior.
func (b *Builder) Request() Request {
	groups := append(append([][]EncodedFeaturePoint{}, b.groups...), b.current)
	return Request{
		Version:       b.version,
		Department:    b.department,
		KeychainArray: groups,
	}
}
