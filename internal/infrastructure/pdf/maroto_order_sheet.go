// Package pdf genera la ficha imprimible de una orden de servicio.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + CNPJ      │  N° OS + Fecha + Estado       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + CPF/CNPJ + contacto                      │
//	│  SERVICIO: Tipo / Prioridad / SLA / Parceiro                │
//	│  LOCAL: Dirección + QR al mapa                              │
//	│  VEHÍCULO (opcional)                                        │
//	│  VALORES: Estimado / Final                                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/vistorias-api/internal/application/ports"
	"github.com/jhoicas/vistorias-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

var _ ports.OrderSheetGenerator = (*MarotoOrderSheetGenerator)(nil)

// MarotoOrderSheetGenerator implementa ports.OrderSheetGenerator usando Maroto v2.
type MarotoOrderSheetGenerator struct {
	printer *message.Printer
	loc     *time.Location
}

// NewMarotoOrderSheetGenerator construye el generador; fechas en loc (nil = UTC).
func NewMarotoOrderSheetGenerator(loc *time.Location) *MarotoOrderSheetGenerator {
	if loc == nil {
		loc = time.UTC
	}
	return &MarotoOrderSheetGenerator{
		printer: message.NewPrinter(language.BrazilianPortuguese),
		loc:     loc,
	}
}

// GenerateOrderSheet genera el PDF y devuelve sus bytes.
func (g *MarotoOrderSheetGenerator) GenerateOrderSheet(_ context.Context, sheet ports.OrderSheet) ([]byte, error) {
	if sheet.Order == nil || sheet.Company == nil {
		return nil, fmt.Errorf("pdf: orden y empresa son obligatorias")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ordem de Serviço "+sheet.Order.OrderNumber, true).
		WithAuthor(sheet.Company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(sheet))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(sheet.Client))
	m.AddRows(g.serviceRow(sheet))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(locationRow(sheet.Order))
	if v := sheet.Order.VehicleInfo; v != nil {
		m.AddRows(vehicleRow(v))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.valuesRow(sheet.Order))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *MarotoOrderSheetGenerator) headerRow(sheet ports.OrderSheet) core.Row {
	o := sheet.Order
	cnpj := "CNPJ: " + nonEmpty(sheet.Company.CNPJ, "—")
	return row.New(20).Add(
		col.New(7).Add(
			text.New(sheet.Company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(cnpj, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("ORDEM DE SERVIÇO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(o.OrderNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New("Aberta em: "+g.formatTime(o.CreatedAt), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
			text.New("Status: "+StatusLabel(o.Status), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 17,
			}),
		),
	)
}

func clientRow(c *entity.Client) core.Row {
	name, doc, email, phone := "—", "—", "—", "—"
	if c != nil {
		name = c.Name
		doc = nonEmpty(c.CPFCNPJ, "—")
		email = nonEmpty(c.Email, "—")
		phone = nonEmpty(c.Phone, "—")
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("CPF/CNPJ: %s   |   Email: %s   |   Tel: %s", doc, email, phone),
				props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

func (g *MarotoOrderSheetGenerator) serviceRow(sheet ports.OrderSheet) core.Row {
	o := sheet.Order
	sla := props.Text{Size: 8, Top: 11}
	slaLabel := "SLA: " + g.formatTime(o.SLADeadline)
	if sheet.IsOverdue {
		sla.Color = colorAlert
		sla.Style = fontstyle.Bold
		slaLabel += " (ATRASADA)"
	}
	return row.New(22).Add(
		col.New(6).Add(
			text.New("SERVIÇO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(ServiceLabel(o.ServiceType)+"  •  Prioridade "+string(o.Priority), props.Text{Size: 9, Top: 6}),
			text.New(slaLabel, sla),
			text.New("Parceiro: "+nonEmpty(sheet.PartnerName, "não atribuído"), props.Text{Size: 8, Top: 15, Color: colorGray}),
		),
		col.New(6).Add(
			text.New("DESCRIÇÃO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(o.Description, "—"), props.Text{Size: 8, Top: 6}),
			text.New("Contato de emergência: "+nonEmpty(o.EmergencyContact, "—"), props.Text{Size: 8, Top: 15, Color: colorGray}),
		),
	)
}

// locationRow dirección y, si hay enlace de mapa, su QR.
func locationRow(o *entity.ServiceOrder) core.Row {
	addr := text.New(o.Address, props.Text{Size: 9, Top: 6})
	title := text.New("LOCAL", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1})
	link := MapLink(o)
	if link == "" {
		return row.New(14).Add(col.New(12).Add(title, addr))
	}
	return row.New(40).Add(
		col.New(8).Add(
			title, addr,
			text.New("Escaneie o QR para abrir o local no mapa.", props.Text{Size: 7, Top: 16, Color: colorGray}),
		),
		col.New(4).Add(code.NewQr(link, props.Rect{Percent: 90, Center: true})),
	)
}

func vehicleRow(v *entity.VehicleInfo) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("VEÍCULO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("%s %s %s   |   Placa: %s   |   Cor: %s",
				v.Brand, v.Model, v.Year, nonEmpty(v.Plate, "—"), nonEmpty(v.Color, "—"),
			), props.Text{Size: 8, Top: 6}),
		),
	)
}

func (g *MarotoOrderSheetGenerator) valuesRow(o *entity.ServiceOrder) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(14).Add(
		col.New(6),
		col.New(3).Add(label("Valor estimado:"), label("Valor final:")),
		col.New(3).Add(value(g.FormatMoney(o.EstimatedValue)), value(g.FormatMoney(o.FinalValue))),
	)
}

func (g *MarotoOrderSheetGenerator) formatTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.In(g.loc).Format("02/01/2006 15:04")
}

// FormatMoney monto en reales con separadores pt-BR; nil = "—".
func (g *MarotoOrderSheetGenerator) FormatMoney(v *decimal.Decimal) string {
	if v == nil {
		return "—"
	}
	f, _ := v.Round(2).Float64()
	return g.printer.Sprintf("R$ %.2f", f)
}

// MapLink enlace explícito de la orden o, en su defecto, uno construido con las coordenadas.
func MapLink(o *entity.ServiceOrder) string {
	if o.GoogleMapsLink != "" {
		return o.GoogleMapsLink
	}
	if o.Coordinates != nil {
		return fmt.Sprintf("https://www.google.com/maps?q=%.6f,%.6f", o.Coordinates.Lat, o.Coordinates.Lng)
	}
	return ""
}

// ServiceLabel nombre legible del tipo de servicio.
func ServiceLabel(t entity.ServiceType) string {
	switch t {
	case entity.ServiceVistoria:
		return "Vistoria"
	case entity.ServiceLaudo:
		return "Laudo"
	case entity.ServiceSOSPneu:
		return "SOS Pneu"
	case entity.ServiceSOSCombustivel:
		return "SOS Combustível"
	case entity.ServiceSOSBateria:
		return "SOS Bateria"
	case entity.ServiceSOSReboque:
		return "SOS Reboque"
	}
	return string(t)
}

// StatusLabel nombre legible del estado.
func StatusLabel(s entity.OrderStatus) string {
	switch s {
	case entity.StatusAberta:
		return "Aberta"
	case entity.StatusDespachada:
		return "Despachada"
	case entity.StatusAceita:
		return "Aceita"
	case entity.StatusEmExecucao:
		return "Em execução"
	case entity.StatusAguardandoValidacao:
		return "Aguardando validação"
	case entity.StatusAprovada:
		return "Aprovada"
	case entity.StatusReprovada:
		return "Reprovada"
	case entity.StatusFinalizada:
		return "Finalizada"
	case entity.StatusCancelada:
		return "Cancelada"
	}
	return string(s)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
