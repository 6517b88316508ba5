package importer

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"golang.org/x/text/encoding/htmlindex"

	"github.com/Gunvolt24/xmlorders/internal/domain"
)

// Названия тэгов входного документа.
const (
	TagOrder    = "order"
	TagNumber   = "no"
	TagRegDate  = "reg_date"
	TagSum      = "sum"
	TagProduct  = "product"
	TagUser     = "user"
	TagName     = "name"
	TagPrice    = "price"
	TagQuantity = "quantity"
	TagFIO      = "fio"
	TagEmail    = "email"

	// textNode — имя, под которым сообщается лишний текст внутри составного элемента.
	textNode = "#text"
)

// ErrMalformedXML — документ не является корректным XML.
var ErrMalformedXML = errors.New("malformed xml document")

// Element — узел документа: имя, собственный текст и дочерние элементы.
// Комментарии и инструкции обработки отбрасываются при разборе.
type Element struct {
	XMLName  xml.Name
	Text     string    `xml:",chardata"`
	Children []Element `xml:",any"`
}

// Tag — локальное имя элемента (без пространства имён).
func (e *Element) Tag() string { return e.XMLName.Local }

// InnerText — текст элемента вместе с текстом всех потомков.
func (e *Element) InnerText() string {
	if len(e.Children) == 0 {
		return e.Text
	}
	var sb strings.Builder
	sb.WriteString(e.Text)
	for i := range e.Children {
		sb.WriteString(e.Children[i].InnerText())
	}
	return sb.String()
}

// Child — первый дочерний элемент с заданным именем.
func (e *Element) Child(tag string) (*Element, bool) {
	for i := range e.Children {
		if e.Children[i].Tag() == tag {
			return &e.Children[i], true
		}
	}
	return nil, false
}

// checkNoText — в составном элементе допустим только пробельный текст между тэгами.
func (e *Element) checkNoText() error {
	if strings.TrimSpace(e.Text) != "" {
		return &domain.UnrecognizedTagError{Tag: textNode}
	}
	return nil
}

// Document — загруженный целиком входной документ.
type Document struct {
	root Element
}

// LoadDocument — читает весь документ в память.
// Кодировки, отличные от UTF-8, декодируются по объявлению в прологе.
func LoadDocument(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader

	var root Element
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: document is empty", ErrMalformedXML)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedXML, err)
	}

	// После корневого элемента допустимы только комментарии и пробелы.
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedXML, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return nil, fmt.Errorf("%w: unexpected second root element <%s>", ErrMalformedXML, t.Name.Local)
		case xml.CharData:
			if strings.TrimSpace(string(t)) != "" {
				return nil, fmt.Errorf("%w: text after root element", ErrMalformedXML)
			}
		}
	}

	return &Document{root: root}, nil
}

// Root — имя корневого элемента.
func (d *Document) Root() string { return d.root.Tag() }

// Len — количество дочерних элементов корня.
func (d *Document) Len() int { return len(d.root.Children) }

// Orders — ленивый однопроходный обход элементов заказов.
// Дочерний элемент корня с именем, отличным от order, прерывает обход ошибкой.
func (d *Document) Orders() iter.Seq2[*Element, error] {
	return func(yield func(*Element, error) bool) {
		for i := range d.root.Children {
			el := &d.root.Children[i]
			if el.Tag() != TagOrder {
				yield(nil, &domain.UnrecognizedTagError{Tag: el.Tag()})
				return
			}
			if !yield(el, nil) {
				return
			}
		}
	}
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	return enc.NewDecoder().Reader(input), nil
}
