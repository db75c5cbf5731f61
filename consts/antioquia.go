package consts

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	AntioquiaCode = "05"
	AntioquiaName = "Antioquia"
)

var SubregionEnglish map[string]string

func init() {
	SubregionEnglish = make(map[string]string)

	SubregionEnglish["valle_de_aburra"] = "Aburrá Valley"
	SubregionEnglish["bajo_cauca"] = "Lower Cauca"
	SubregionEnglish["magdalena_medio"] = "Middle Magdalena"
	SubregionEnglish["nordeste"] = "Northeast"
	SubregionEnglish["norte"] = "North"
	SubregionEnglish["occidente"] = "West"
	SubregionEnglish["oriente"] = "East"
	SubregionEnglish["suroeste"] = "Southwest"
	SubregionEnglish["uraba"] = "Urabá"
}

// NameKey - accent free, lower case and underscore separated key of a place
// name, `MEDELLÍN` becomes `medellin` and `El Carmen de Viboral` becomes
// `el_carmen_de_viboral`
func NameKey(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, name)
	if err != nil {
		plain = name
	}

	fields := strings.FieldsFunc(strings.ToLower(plain), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(fields, "_")
}

// SubregionEnglishName - english name of an Antioquia subregion
func SubregionEnglishName(region string) (string, error) {
	if en, ok := SubregionEnglish[NameKey(region)]; !ok {
		return "", fmt.Errorf("%s not exist", region)
	} else {
		return en, nil
	}
}
