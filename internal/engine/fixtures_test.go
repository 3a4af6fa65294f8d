package engine

import (
	"time"

	"github.com/ksomisetty/scm-analytics/internal/domain"
)

// Shared fixture helpers. All dates are UTC midnights so day arithmetic in
// the engine stays exact.

var baseDay = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func day(n int) time.Time {
	return baseDay.AddDate(0, 0, n)
}

func tptr(t time.Time) *time.Time { return &t }

func line(productID, warehouseID int64, orderDay, qty int, price float64) domain.TransactionLine {
	return domain.TransactionLine{
		OrderID:         int64(orderDay)*100 + productID,
		ProductID:       productID,
		WarehouseID:     warehouseID,
		OrderDate:       day(orderDay),
		Status:          domain.StatusDelivered,
		QuantityOrdered: qty,
		QuantityShipped: qty,
		UnitPrice:       price,
	}
}

func product(id int64, cost, price float64, leadDays int) domain.Product {
	return domain.Product{
		ProductID:    id,
		SKU:          "SKU-" + string(rune('A'+id-1)),
		ProductName:  "Product " + string(rune('A'+id-1)),
		CategoryID:   1,
		SupplierID:   1,
		UnitCost:     cost,
		UnitPrice:    price,
		LeadTimeDays: leadDays,
	}
}

func delivery(poID, supplierID int64, orderDay, expectedDay int, actualDay *int) domain.DeliveryRecord {
	d := domain.DeliveryRecord{
		POID:                 poID,
		SupplierID:           supplierID,
		OrderDate:            day(orderDay),
		ExpectedDeliveryDate: day(expectedDay),
		Status:               domain.StatusDelivered,
	}
	if actualDay != nil {
		d.ActualDeliveryDate = tptr(day(*actualDay))
	}
	return d
}

func intptr(v int) *int { return &v }
