// Package pdf renders booking receipts.
package pdf

import (
	"context"
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"go.uber.org/fx"
)

type ReceiptData struct {
	Reference    string
	Status       string
	HotelName    string
	HotelAddress string
	RoomName     string
	CheckInDate  string
	CheckOutDate string
	Nights       int32
	NightlyPrice string
	Subtotal     string
	Discount     string
	Total        string
	IssuedAt     string
}

type Generator interface {
	BookingReceipt(ctx context.Context, data ReceiptData) ([]byte, error)
}

type generator struct{}

func New() Generator {
	return &generator{}
}

func (g *generator) BookingReceipt(ctx context.Context, data ReceiptData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(30,
		text.NewCol(8, "Booking receipt", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
		text.NewCol(4, data.Reference, props.Text{
			Size:  12,
			Align: align.Right,
			Top:   5,
		}),
	)

	m.AddRow(25,
		col.New(6).Add(
			text.New(data.HotelName, props.Text{Style: fontstyle.Bold}),
			text.New(data.HotelAddress, props.Text{Top: 5}),
			text.New("Room: "+data.RoomName, props.Text{Top: 10}),
		),
		col.New(6).Add(
			text.New("Issued: "+data.IssuedAt, props.Text{Align: align.Right}),
			text.New("Status: "+data.Status, props.Text{Top: 5, Align: align.Right}),
		),
	)

	m.AddRow(15,
		col.New(6).Add(
			text.New("Check-in: "+data.CheckInDate, props.Text{Size: 10}),
			text.New("Check-out: "+data.CheckOutDate, props.Text{Top: 5, Size: 10}),
		),
		col.New(6),
	)

	m.AddRow(10,
		text.NewCol(6, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Nights", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Per night", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	m.AddRow(12,
		text.NewCol(6, data.RoomName, props.Text{Size: 9}),
		text.NewCol(2, fmt.Sprintf("%d", data.Nights), props.Text{Size: 9, Align: align.Right}),
		text.NewCol(2, data.NightlyPrice, props.Text{Size: 9, Align: align.Right}),
		text.NewCol(2, data.Subtotal, props.Text{Size: 9, Align: align.Right}),
	)

	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Subtotal", props.Text{Size: 9}),
		text.NewCol(2, data.Subtotal, props.Text{Size: 9, Align: align.Right}),
	)
	if data.Discount != "" {
		m.AddRow(10,
			col.New(8),
			text.NewCol(2, "Discount", props.Text{Size: 9}),
			text.NewCol(2, "-"+data.Discount, props.Text{Size: 9, Align: align.Right}),
		)
	}
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Size: 9, Style: fontstyle.Bold}),
		text.NewCol(2, data.Total, props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return doc.GetBytes(), nil
}

var Module = fx.Module("pdf", fx.Provide(New))
