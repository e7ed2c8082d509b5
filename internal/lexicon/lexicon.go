// Package lexicon ships the static, multilingual mapping from natural
// language field labels to canonical field keys, the way the teacher's
// internal/datanorm/column_mapper.go ships its columnAliases map: data, not
// code, with field detection as a thin function over the map.
package lexicon

import (
	"regexp"
	"strings"
)

// Field is a canonical field key a miner can populate on a candidate
// contact.
type Field string

const (
	FieldCompany Field = "company"
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldPhone   Field = "phone"
	FieldCountry Field = "country"
	FieldCity    Field = "city"
	FieldAddress Field = "address"
	FieldWebsite Field = "website"
	FieldTitle   Field = "title"
)

// fieldOrder is the declaration order used to break ties when more than one
// field's labels could match the same text — first match in this order wins.
var fieldOrder = []Field{
	FieldCompany, FieldName, FieldEmail, FieldPhone,
	FieldCountry, FieldCity, FieldAddress, FieldWebsite, FieldTitle,
}

// labels maps each canonical field to its surface forms across languages.
// Surface forms are lowercase; matching against input text lowercases first.
var labels = map[Field][]string{
	FieldCompany: {
		"company", "company name", "organization", "organisation", "employer",
		"firma", "şirket", "sirket", // Turkish
		"empresa", // Spanish/Portuguese
		"entreprise", "société", "societe", // French
		"firma azienda", "azienda", // Italian
		"unternehmen", "firma de", // German
		"会社", "企業", // Japanese
		"公司", // Chinese
		"компания", "фирма", // Russian
		"firma pracy", // Polish
		"bedrijf", // Dutch
		"fyrirtæki", // Icelandic
	},
	FieldName: {
		"name", "full name", "contact name", "contact",
		"isim", "i̇sim", "ad soyad", // Turkish
		"nombre", // Spanish
		"nom", // French
		"nome", // Italian/Portuguese
		"name de", // German (falls back below)
		"氏名", "名前", // Japanese
		"姓名", // Chinese
		"имя", // Russian
		"imię", "imie", // Polish
		"naam", // Dutch
	},
	FieldEmail: {
		"email", "e-mail", "email address", "mail",
		"e-posta", "eposta", // Turkish
		"correo", "correo electrónico", "correo electronico", // Spanish
		"courriel", // French
		"電子郵件", // Chinese
		"メール", // Japanese
		"электронная почта", "эл. почта", // Russian
		"epost", "e-post", // Nordic
	},
	FieldPhone: {
		"phone", "telephone", "phone number", "mobile", "tel", "cell",
		"telefon", // Turkish/German/Polish
		"teléfono", "telefono", // Spanish/Italian
		"téléphone", // French
		"電話", "電話番号", // Japanese
		"电话", // Chinese
		"телефон", // Russian
	},
	FieldCountry: {
		"country", "nation",
		"ülke", "ulke", // Turkish
		"país", "pais", // Spanish/Portuguese
		"pays", // French
		"paese", // Italian
		"land", // German/Dutch
		"国", "国家", // Japanese/Chinese
		"страна", // Russian
	},
	FieldCity: {
		"city", "town",
		"şehir", "sehir", // Turkish
		"ciudad", // Spanish
		"ville", // French
		"città", "citta", // Italian
		"stadt", // German
		"市", "都市", // Japanese
		"城市", // Chinese
		"город", // Russian
	},
	FieldAddress: {
		"address", "street address", "mailing address",
		"adres", // Turkish/Polish
		"dirección", "direccion", // Spanish
		"adresse", // French/German
		"indirizzo", // Italian
		"住所", // Japanese
		"地址", // Chinese
		"адрес", // Russian
	},
	FieldWebsite: {
		"website", "web site", "url", "site", "web",
		"site web", // French
		"sitio web", // Spanish
		"sito web", // Italian
		"ウェブサイト", // Japanese
		"网站", // Chinese
		"сайт", // Russian
	},
	FieldTitle: {
		"title", "job title", "position", "role", "designation",
		"ünvan", "unvan", "pozisyon", // Turkish
		"cargo", "puesto", // Spanish/Portuguese
		"poste", "fonction", // French
		"titolo", // Italian
		"役職", "肩書き", // Japanese
		"职位", // Chinese
		"должность", // Russian
	},
}

// FieldFor returns the canonical field whose surface-form list contains a
// substring of the lowercased label text, checking fields in declaration
// order so the first field that matches wins.
func FieldFor(labelText string) (Field, bool) {
	lower := strings.ToLower(strings.TrimSpace(labelText))
	if lower == "" {
		return "", false
	}
	for _, field := range fieldOrder {
		for _, surface := range labels[field] {
			if strings.Contains(lower, surface) {
				return field, true
			}
		}
	}
	return "", false
}

// LabelSurface pairs a canonical field with one of its surface forms.
type LabelSurface struct {
	Field   Field
	Surface string
}

// LabelsAll returns every (field, surface form) pair in declaration order,
// for miners that need to build boundary-aware regular expressions.
func LabelsAll() []LabelSurface {
	var out []LabelSurface
	for _, field := range fieldOrder {
		for _, surface := range labels[field] {
			out = append(out, LabelSurface{Field: field, Surface: surface})
		}
	}
	return out
}

// labelLinePatterns holds, for every surface form, a pattern matching that
// label anchored at line start (or after a newline), tolerating leading
// whitespace, terminated by a ':' or '-' separator optionally surrounded by
// whitespace. Case-insensitive, diacritic-preserving. Precompiled at init
// since the label set is static — miners run concurrently across jobs and
// must not race on a lazily-filled cache.
var labelLinePatterns = buildLabelLinePatterns()

func buildLabelLinePatterns() map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp, len(LabelsAll()))
	for _, ls := range LabelsAll() {
		escaped := regexp.QuoteMeta(ls.Surface)
		out[ls.Surface] = regexp.MustCompile(`(?mi)^[ \t]*` + escaped + `[ \t]*[:\-][ \t]*`)
	}
	return out
}

// LabelLinePattern returns the compiled pattern that matches a label surface
// form at the start of a line, followed by a ':' or '-' separator.
func LabelLinePattern(surface string) *regexp.Regexp {
	return labelLinePatterns[surface]
}
