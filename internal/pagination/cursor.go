package pagination

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Direction — направление шага пагинации, зашитое в курсор.
type Direction string

const (
	DirNext Direction = "next"
	DirPrev Direction = "prev"
)

// Cursor — позиция в выдаче: поле сортировки, его значение у граничного
// документа и _id этого документа как tie-break. Направление говорит движку,
// куда шагать от позиции.
type Cursor struct {
	Field SortField
	Dir   Direction
	// Time — значение для releasedAt/createdAt (в UTC).
	Time time.Time
	// Title — значение для сортировки по title.
	Title string
	ID    primitive.ObjectID
}

// cursorPayload — сериализуемое представление курсора.
// Времена кодируются строкой RFC3339Nano в UTC, поэтому одна и та же точка
// времени в любом поясе даёт один и тот же токен.
type cursorPayload struct {
	Field string `json:"f"`
	Dir   string `json:"d,omitempty"`
	Value string `json:"v"`
	ID    string `json:"id"`
}

// EncodeCursor кодирует курсор в непрозрачный URL-safe токен.
func EncodeCursor(c Cursor) string {
	p := cursorPayload{
		Field: string(c.Field),
		ID:    c.ID.Hex(),
	}

	if c.Dir == DirPrev {
		p.Dir = string(DirPrev)
	}

	switch c.Field {
	case SortByTitle:
		p.Value = c.Title
	default:
		p.Value = c.Time.UTC().Format(time.RFC3339Nano)
	}

	raw, _ := json.Marshal(p)

	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeCursor декодирует токен обратно в курсор.
// Любой дефект токена (base64, JSON, поле, значение, ObjectID) — ErrInvalidCursor.
func DecodeCursor(token string) (Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return Cursor{}, fmt.Errorf("base64: %w", ErrInvalidCursor)
	}

	var p cursorPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Cursor{}, fmt.Errorf("payload: %w", ErrInvalidCursor)
	}

	c := Cursor{
		Field: SortField(p.Field),
		Dir:   DirNext,
	}

	if !c.Field.valid() {
		return Cursor{}, fmt.Errorf("field %q: %w", p.Field, ErrInvalidCursor)
	}

	switch Direction(p.Dir) {
	case DirPrev:
		c.Dir = DirPrev
	case DirNext, "":
	default:
		return Cursor{}, fmt.Errorf("direction %q: %w", p.Dir, ErrInvalidCursor)
	}

	switch c.Field {
	case SortByTitle:
		c.Title = p.Value
	default:
		t, err := time.Parse(time.RFC3339Nano, p.Value)
		if err != nil {
			return Cursor{}, fmt.Errorf("value: %w", ErrInvalidCursor)
		}

		c.Time = t.UTC()
	}

	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return Cursor{}, fmt.Errorf("object id: %w", ErrInvalidCursor)
	}

	c.ID = oid

	return c, nil
}
