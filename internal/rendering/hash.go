package rendering

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/achint227/Resume-Generator/internal/types"
)

// HashLength is the number of hex characters kept from the digest.
const HashLength = 8

// ContentHash fingerprints a document together with the template and the
// section order. The document is serialized with sorted keys, so the result
// is stable across processes. The storage id is hashed with the content, so
// two stored résumés with identical fields never share a working file.
func ContentHash(doc *types.Resume, template TemplateID, order SectionOrder) string {
	content := doc.Clone().Normalize()

	payload, err := canonicalJSON(content)
	if err != nil {
		// The model only holds strings and slices; this path is a defect.
		payload = []byte(fmt.Sprintf("%+v", content))
	}

	h := sha256.New()
	h.Write(payload)
	h.Write([]byte(template))
	h.Write([]byte(order))
	return hex.EncodeToString(h.Sum(nil))[:HashLength]
}

// canonicalJSON marshals v with every object's keys in sorted order.
func canonicalJSON(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, err
	}
	// encoding/json sorts map keys on output.
	return json.Marshal(generic)
}
