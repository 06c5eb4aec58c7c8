package tracking

// Category is a coarse shipment lifecycle stage.
type Category string

const (
	Unclassified        Category = ""
	Booked              Category = "Booked"
	InTransit           Category = "InTransit"
	InBound             Category = "InBound"
	OutBound            Category = "OutBound"
	Delivered           Category = "Delivered"
	NoticeLeft          Category = "NoticeLeft"
	InTransitToDelivery Category = "InTransitToDelivery"
	Stuck               Category = "Stuck"
	Returned            Category = "Returned"
)

// Categories returns the nine lifecycle stages in report sheet order.
func Categories() []Category {
	return []Category{
		Booked,
		InTransit,
		InBound,
		OutBound,
		Delivered,
		NoticeLeft,
		InTransitToDelivery,
		Stuck,
		Returned,
	}
}

// eventCategories maps carrier event descriptions to stages. Matching is
// exact, including the (Otb)/(Inb) suffix.
var eventCategories = map[string]Category{
	"Receive item from customer (Otb)":                   Booked,
	"Receive item at office of exchange (Otb)":           Booked,
	"Insert item into bag (Otb)":                         InTransit,
	"Receive item at office of exchange (Inb)":           InTransit,
	"Receive item at delivery office (Inb)":              InTransitToDelivery,
	"Deliver item (Inb)":                                 Delivered,
	"Send item to customs (Inb)":                         InBound,
	"Return item from customs (Inb)":                     OutBound,
	"Unsuccessful item delivery attempt (Inb)":           NoticeLeft,
	"Receive item at collection point for pick-up (Inb)": NoticeLeft,
	"Send item to domestic location (Inb)":               Returned,
	"Record item customs information (Inb)":              Stuck,
}

// Classify returns the stage for an event description. The boolean is false
// (and the category Unclassified) for descriptions outside the table.
func Classify(eventType string) (Category, bool) {
	c, ok := eventCategories[eventType]
	return c, ok
}

// summaryLabels are the row labels of the report's Summary sheet.
var summaryLabels = map[Category]string{
	Delivered:           "Delivered Items",
	Booked:              "Booked Items",
	InBound:             "Items in InBound",
	InTransit:           "Items in Intransit",
	NoticeLeft:          "Items in Notice Left",
	OutBound:            "Items in OutBound",
	InTransitToDelivery: "Intransit to Delivery items",
	Stuck:               "Items in Stuck",
	Returned:            "Return Items",
}

// SummaryOrder lists the stages in Summary sheet order.
func SummaryOrder() []Category {
	return []Category{
		Delivered,
		Booked,
		InBound,
		InTransit,
		NoticeLeft,
		OutBound,
		InTransitToDelivery,
		Stuck,
		Returned,
	}
}

// SummaryLabel returns the Summary sheet label for c.
func (c Category) SummaryLabel() string {
	if l, ok := summaryLabels[c]; ok {
		return l
	}
	return string(c)
}

// CategoryMap maps each stage to the 1-based data row numbers (header
// excluded) of the consolidated output whose event type falls in it.
type CategoryMap map[Category][]int

// NewCategoryMap returns a map with an empty entry for every stage.
func NewCategoryMap() CategoryMap {
	cats := Categories()
	m := make(CategoryMap, len(cats))
	for _, c := range cats {
		m[c] = []int{}
	}
	return m
}

// Count returns how many rows fell into c.
func (m CategoryMap) Count(c Category) int { return len(m[c]) }

// Total returns the number of classified rows.
func (m CategoryMap) Total() int {
	n := 0
	for _, rows := range m {
		n += len(rows)
	}
	return n
}

// Categorize classifies a column of event types. eventTypes[0] is data row 1.
// Unclassified rows are left out of every category.
func Categorize(eventTypes []string) CategoryMap {
	m := NewCategoryMap()
	for i, et := range eventTypes {
		if c, ok := Classify(et); ok {
			m[c] = append(m[c], i+1)
		}
	}
	return m
}
