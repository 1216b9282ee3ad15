// Package navigation carries restriction values across drill-down links.
//
// A link names the restriction of the target report and the value taken
// from the clicked cell. Date values travel as OLE automation serial numbers,
// the format Restriction.SetNavigationValue expects.
package navigation

import (
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/theplant/restriction"
	"github.com/theplant/restriction/dialect"
)

// Link is the payload of a navigation token.
type Link struct {
	RestrictionID string `json:"r"`
	Value         string `json:"v"`
}

var jsoniterForLink = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

// DateLink builds a link carrying a date for a DateTime restriction.
func DateLink(restrictionID string, date time.Time) Link {
	return Link{
		RestrictionID: restrictionID,
		Value:         strconv.FormatFloat(dialect.ToOADate(date), 'f', -1, 64),
	}
}

// Encode serializes link into a token.
func Encode(codec Codec, link Link) (string, error) {
	b, err := jsoniterForLink.Marshal(link)
	if err != nil {
		return "", errors.Wrap(err, "marshal navigation link")
	}
	return codec.Encode(string(b))
}

// Decode reads the link carried by token.
func Decode(codec Codec, token string) (*Link, error) {
	plainText, err := codec.Decode(token)
	if err != nil {
		return nil, err
	}
	link := &Link{}
	if err := jsoniterForLink.UnmarshalFromString(plainText, link); err != nil {
		return nil, errors.Wrap(err, "unmarshal navigation link")
	}
	if link.RestrictionID == "" {
		return nil, errors.New("navigation link without restriction")
	}
	return link, nil
}

// Apply decodes token and routes its value into the matching restriction.
func Apply(codec Codec, token string, restrictions ...*restriction.Restriction) (*restriction.Restriction, error) {
	link, err := Decode(codec, token)
	if err != nil {
		return nil, err
	}
	r, ok := lo.Find(restrictions, func(r *restriction.Restriction) bool {
		return r != nil && r.ID == link.RestrictionID
	})
	if !ok {
		return nil, errors.Errorf("restriction %s not found", link.RestrictionID)
	}
	if err := r.SetNavigationValue(link.Value); err != nil {
		return nil, errors.Wrapf(err, "apply navigation value to restriction %s", r.ID)
	}
	return r, nil
}
