package render

import (
	"archive/zip"
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"time"

	"github.com/jean1991/creditcarbon/internal/domain/models"
)

// The DOCX backend emits the OOXML package directly: a zip archive holding
// the content-types manifest, the package relationships, word/document.xml
// and the embedded media. The parts produced mirror what the platform's
// document exports have always contained.

const emuPerInch = 914400

const (
	docxLogoWidthEMU      = 2 * emuPerInch
	docxChartWidthEMU     = 6 * emuPerInch
	docxSignatureWidthEMU = 2 * emuPerInch
)

func (r *Renderer) renderDOCX(report *models.Report, charts []models.RenderedChart, opts models.ExportOptions) ([]byte, error) {
	doc := newDocxBuilder()

	if opts.IncludeLogo {
		if !doc.addImage(r.branding.Logo, docxLogoWidthEMU, "center") {
			r.logger.Warn("docx rendered without ministry logo")
			doc.addParagraph("[ ministry logo unavailable ]", paraProps{Italic: true, Center: true})
		}
	}

	doc.addParagraph(headerCountry, paraProps{Center: true})
	doc.addParagraph(headerMinistry, paraProps{Center: true})
	doc.addParagraph(report.Title, paraProps{Bold: true, Center: true, SizeHalfPts: 36})
	doc.addParagraph("", paraProps{})

	var metaRows [][]string
	for _, row := range metadataRows(report) {
		metaRows = append(metaRows, []string{row.Key, row.Value})
	}
	doc.addTable(nil, metaRows)
	doc.addParagraph("", paraProps{})

	for _, table := range dataTables(report, report.Charts) {
		doc.addParagraph(table.Title, paraProps{Bold: true, SizeHalfPts: 28})
		doc.addTable(table.Header, table.Rows)
		doc.addParagraph("", paraProps{})
	}

	if len(charts) > 0 {
		doc.addParagraph("Data Visualization", paraProps{Bold: true, SizeHalfPts: 28})
		for _, chart := range charts {
			if !doc.addImage(chart.ImageBytes, docxChartWidthEMU, "center") {
				return nil, fmt.Errorf("%w: chart %q rejected by docx writer", models.ErrCorruptChartData, chart.Spec.Title)
			}
			doc.addParagraph(chart.Spec.Title, paraProps{Italic: true, Center: true})
		}
	}

	if opts.IncludeSignature {
		doc.addPageBreak()
		doc.addParagraph("Authorization", paraProps{Bold: true, SizeHalfPts: 28})
		doc.addParagraph("", paraProps{})
		if !doc.addImage(r.branding.Signature, docxSignatureWidthEMU, "left") {
			r.logger.Warn("docx rendered without signature image")
			doc.addParagraph("[ signature unavailable ]", paraProps{Italic: true})
		}
		doc.addParagraph("______________________________", paraProps{})
		doc.addParagraph(signatureCaption, paraProps{})
		doc.addParagraph(fmt.Sprintf("Date: %s", time.Now().UTC().Format("2006-01-02")), paraProps{})
	}

	return doc.bytes()
}

type docxMedia struct {
	name string
	ext  string
	data []byte
}

type docxBuilder struct {
	body   strings.Builder
	media  []docxMedia
	nextID int
}

func newDocxBuilder() *docxBuilder {
	return &docxBuilder{nextID: 1}
}

type paraProps struct {
	Bold        bool
	Italic      bool
	Center      bool
	SizeHalfPts int
}

func xmlEscape(s string) string {
	return strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	).Replace(s)
}

func (b *docxBuilder) addParagraph(text string, props paraProps) {
	b.body.WriteString("<w:p>")
	if props.Center {
		b.body.WriteString(`<w:pPr><w:jc w:val="center"/></w:pPr>`)
	}
	b.body.WriteString("<w:r>")
	var rpr strings.Builder
	if props.Bold {
		rpr.WriteString("<w:b/>")
	}
	if props.Italic {
		rpr.WriteString("<w:i/>")
	}
	if props.SizeHalfPts > 0 {
		fmt.Fprintf(&rpr, `<w:sz w:val="%d"/>`, props.SizeHalfPts)
	}
	if rpr.Len() > 0 {
		fmt.Fprintf(&b.body, "<w:rPr>%s</w:rPr>", rpr.String())
	}
	fmt.Fprintf(&b.body, `<w:t xml:space="preserve">%s</w:t>`, xmlEscape(text))
	b.body.WriteString("</w:r></w:p>")
}

func (b *docxBuilder) addPageBreak() {
	b.body.WriteString(`<w:p><w:r><w:br w:type="page"/></w:r></w:p>`)
}

func (b *docxBuilder) addTable(header []string, rows [][]string) {
	b.body.WriteString(`<w:tbl><w:tblPr><w:tblW w:w="0" w:type="auto"/>` +
		`<w:tblBorders>` +
		`<w:top w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`<w:left w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`<w:bottom w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`<w:right w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`<w:insideH w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`<w:insideV w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`</w:tblBorders></w:tblPr>`)

	writeRow := func(cells []string, bold bool) {
		b.body.WriteString("<w:tr>")
		for _, cell := range cells {
			b.body.WriteString("<w:tc><w:tcPr/><w:p><w:r>")
			if bold {
				b.body.WriteString("<w:rPr><w:b/></w:rPr>")
			}
			fmt.Fprintf(&b.body, `<w:t xml:space="preserve">%s</w:t>`, xmlEscape(cell))
			b.body.WriteString("</w:r></w:p></w:tc>")
		}
		b.body.WriteString("</w:tr>")
	}

	if len(header) > 0 {
		writeRow(header, true)
	}
	for _, row := range rows {
		writeRow(row, false)
	}
	b.body.WriteString("</w:tbl>")
}

// addImage embeds image bytes as an inline drawing scaled to widthEMU with
// the aspect ratio preserved. Returns false when the bytes are empty or not
// a decodable PNG/JPEG.
func (b *docxBuilder) addImage(data []byte, widthEMU int, align string) bool {
	if len(data) == 0 {
		return false
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width == 0 {
		return false
	}

	ext := "png"
	if format == "jpeg" {
		ext = "jpeg"
	}

	id := b.nextID
	b.nextID++
	name := fmt.Sprintf("image%d", id)
	b.media = append(b.media, docxMedia{name: name, ext: ext, data: data})

	heightEMU := widthEMU * cfg.Height / cfg.Width

	b.body.WriteString("<w:p>")
	if align == "center" {
		b.body.WriteString(`<w:pPr><w:jc w:val="center"/></w:pPr>`)
	}
	fmt.Fprintf(&b.body,
		`<w:r><w:drawing><wp:inline distT="0" distB="0" distL="0" distR="0">`+
			`<wp:extent cx="%d" cy="%d"/>`+
			`<wp:docPr id="%d" name="%s"/>`+
			`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture">`+
			`<pic:pic>`+
			`<pic:nvPicPr><pic:cNvPr id="%d" name="%s"/><pic:cNvPicPr/></pic:nvPicPr>`+
			`<pic:blipFill><a:blip r:embed="rId%d"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>`+
			`<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
			`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr>`+
			`</pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing></w:r>`,
		widthEMU, heightEMU, id, name, id, name, id, widthEMU, heightEMU)
	b.body.WriteString("</w:p>")

	return true
}

const docxContentTypesPrefix = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Default Extension="png" ContentType="image/png"/>
<Default Extension="jpeg" ContentType="image/jpeg"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const docxPackageRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const docxDocumentOpen = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"` +
	` xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"` +
	` xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"` +
	` xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"` +
	` xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture"><w:body>`

const docxDocumentClose = `</w:body></w:document>`

func (b *docxBuilder) bytes() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	write := func(name, content string) error {
		w, err := zw.Create(name)
		if err != nil {
			return err
		}
		_, err = w.Write([]byte(content))
		return err
	}

	if err := write("[Content_Types].xml", docxContentTypesPrefix); err != nil {
		return nil, fmt.Errorf("write content types: %w", err)
	}
	if err := write("_rels/.rels", docxPackageRels); err != nil {
		return nil, fmt.Errorf("write package rels: %w", err)
	}
	if err := write("word/document.xml", docxDocumentOpen+b.body.String()+docxDocumentClose); err != nil {
		return nil, fmt.Errorf("write document: %w", err)
	}

	var rels strings.Builder
	rels.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for i, m := range b.media {
		fmt.Fprintf(&rels,
			`<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/%s.%s"/>`,
			i+1, m.name, m.ext)
	}
	rels.WriteString(`</Relationships>`)
	if err := write("word/_rels/document.xml.rels", rels.String()); err != nil {
		return nil, fmt.Errorf("write document rels: %w", err)
	}

	for _, m := range b.media {
		w, err := zw.Create(fmt.Sprintf("word/media/%s.%s", m.name, m.ext))
		if err != nil {
			return nil, fmt.Errorf("write media %s: %w", m.name, err)
		}
		if _, err := w.Write(m.data); err != nil {
			return nil, fmt.Errorf("write media %s: %w", m.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close docx package: %w", err)
	}
	return buf.Bytes(), nil
}
