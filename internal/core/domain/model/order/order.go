package order

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const (
	// UpdateWindow is the period after creation during which an order's fields
	// may still be changed. Updates at the boundary are allowed; updates past
	// it fail with ErrUpdateWindowElapsed.
	UpdateWindow = 5 * time.Minute
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through New or Restore.
	ErrOrderIsNotConstructed = errors.New("Order must be created via New or Restore constructor")

	// ErrUpdateWindowElapsed is returned when an update is attempted after the
	// mutability window has passed. The message is part of the API contract.
	ErrUpdateWindowElapsed = errors.New("Order cannot be updated after 5 minutes.")

	// ErrIDAlreadyAssigned is returned when the store tries to assign an
	// identifier to an order that already has one.
	ErrIDAlreadyAssigned = errors.New("order ID is immutable once assigned")

	errFirstNameRequired       = errs.NewValidationError("First name is required")
	errLastNameRequired        = errs.NewValidationError("Last name is required")
	errTelephoneNumberRequired = errs.NewValidationError("Telephone number is required")
	errEmailRequired           = errs.NewValidationError("Email is required")
	errDeliveryAddressRequired = errs.NewValidationError("Delivery address is required")
	errInvalidPhoneNumber      = errs.NewValidationError("Invalid phone number")
	errInvalidEmailAddress     = errs.NewValidationError("Invalid email address")
	errInvalidCustomerCount    = errs.NewValidationError("Invalid number of customers. Valid values are 5, 10, or 15.")
)

var (
	telephonePattern = regexp.MustCompile(`^[0-9]{10}$`)
	emailPattern     = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

	// pricePerCustomer is a fixed business constant, not configuration.
	pricePerCustomer = decimal.New(133, -2) // 1.33

	validCustomerCounts = []int{5, 10, 15}
)

// Details carries the client-supplied fields of an order. The identifier,
// total, and creation timestamp are never part of Details: the store assigns
// the id, and the entity derives the rest.
type Details struct {
	FirstName       string
	LastName        string
	TelephoneNumber string
	Email           string
	DeliveryAddress string
	CustomerCount   int
}

// Order is the aggregate root for a customer order. It maintains these
// invariants:
//   - all contact fields are non-blank and well-formed
//   - the customer count is one of the fixed valid values
//   - the total is always derived from the customer count, never supplied
//   - the creation timestamp and the store-assigned id never change
//
// Fields are private; construction goes through New (fresh orders) or
// Restore (persisted records).
type Order struct {
	id              int64
	firstName       string
	lastName        string
	telephoneNumber string
	email           string
	deliveryAddress string
	customerCount   int
	orderTotal      decimal.Decimal
	orderDate       time.Time

	guard guard.ConstructorGuard
}

// New creates an order from client-supplied details, stamping the creation
// time and deriving the total. All field rules are checked eagerly; the
// returned error aggregates one validation error per violated rule, in field
// order. The id stays unassigned until the store persists the order.
func New(details Details, now time.Time) (*Order, error) {
	if err := ValidateDetails(details); err != nil {
		return nil, err
	}

	o := &Order{
		orderDate: now,
		guard:     guard.NewConstructorGuard(),
	}
	o.applyDetails(details)

	return o, nil
}

// Restore rebuilds an order from its persisted representation. The store owns
// the durable copy, so field rules are not re-checked here.
func Restore(id int64, details Details, orderTotal decimal.Decimal, orderDate time.Time) *Order {
	o := &Order{
		id:         id,
		orderTotal: orderTotal,
		orderDate:  orderDate,
		guard:      guard.NewConstructorGuard(),
	}
	o.firstName = details.FirstName
	o.lastName = details.LastName
	o.telephoneNumber = details.TelephoneNumber
	o.email = details.Email
	o.deliveryAddress = details.DeliveryAddress
	o.customerCount = details.CustomerCount

	return o
}

// ValidateDetails checks every field rule and returns the aggregated list of
// violations via errors.Join, or nil when all rules hold. Blank fields report
// only their "is required" message; format rules apply to non-blank values.
func ValidateDetails(details Details) error {
	return errors.Join(
		validateRequired(details.FirstName, errFirstNameRequired),
		validateRequired(details.LastName, errLastNameRequired),
		validateTelephoneNumber(details.TelephoneNumber),
		validateEmail(details.Email),
		validateRequired(details.DeliveryAddress, errDeliveryAddressRequired),
		validateCustomerCount(details.CustomerCount),
	)
}

// TotalFor derives the order total for a customer count using exact decimal
// arithmetic.
func TotalFor(customerCount int) decimal.Decimal {
	return decimal.NewFromInt(int64(customerCount)).Mul(pricePerCustomer)
}

// Validate ensures the Order instance was created through New or Restore.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// UpdateDetails replaces the mutable fields from details and recomputes the
// total. The id and creation timestamp are never touched. The update is only
// permitted while now is within UpdateWindow of the creation timestamp;
// afterwards ErrUpdateWindowElapsed is returned and nothing is changed.
// Details are validated with the same rules as creation before any mutation.
func (o *Order) UpdateDetails(details Details, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := ValidateDetails(details); err != nil {
		return err
	}
	if now.Sub(o.orderDate) > UpdateWindow {
		return ErrUpdateWindowElapsed
	}

	o.applyDetails(details)
	return nil
}

// AssignID records the store-generated identifier on first persist. The id is
// immutable once assigned.
func (o *Order) AssignID(id int64) error {
	if o.id != 0 {
		return ErrIDAlreadyAssigned
	}
	if id <= 0 {
		return errs.NewValueIsInvalidError("id")
	}
	o.id = id
	return nil
}

// ID returns the store-assigned identifier, or 0 before the first persist.
func (o *Order) ID() int64 {
	return o.id
}

// Details returns the client-facing fields of the order.
func (o *Order) Details() Details {
	return Details{
		FirstName:       o.firstName,
		LastName:        o.lastName,
		TelephoneNumber: o.telephoneNumber,
		Email:           o.email,
		DeliveryAddress: o.deliveryAddress,
		CustomerCount:   o.customerCount,
	}
}

// FirstName returns the customer's first name.
func (o *Order) FirstName() string {
	return o.firstName
}

// LastName returns the customer's last name.
func (o *Order) LastName() string {
	return o.lastName
}

// TelephoneNumber returns the customer's telephone number.
func (o *Order) TelephoneNumber() string {
	return o.telephoneNumber
}

// Email returns the customer's email address.
func (o *Order) Email() string {
	return o.email
}

// DeliveryAddress returns the delivery address.
func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

// CustomerCount returns the size of the customer party.
func (o *Order) CustomerCount() int {
	return o.customerCount
}

// OrderTotal returns the derived total.
func (o *Order) OrderTotal() decimal.Decimal {
	return o.orderTotal
}

// OrderDate returns the creation timestamp.
func (o *Order) OrderDate() time.Time {
	return o.orderDate
}

// IsEqual compares two orders by their store-assigned identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id != 0 && o.id == other.id
}

func (o *Order) applyDetails(details Details) {
	o.firstName = details.FirstName
	o.lastName = details.LastName
	o.telephoneNumber = details.TelephoneNumber
	o.email = details.Email
	o.deliveryAddress = details.DeliveryAddress
	o.customerCount = details.CustomerCount
	o.orderTotal = TotalFor(details.CustomerCount)
}

func validateRequired(value string, violation error) error {
	if strings.TrimSpace(value) == "" {
		return violation
	}
	return nil
}

func validateTelephoneNumber(value string) error {
	if strings.TrimSpace(value) == "" {
		return errTelephoneNumberRequired
	}
	if !telephonePattern.MatchString(value) {
		return errInvalidPhoneNumber
	}
	return nil
}

func validateEmail(value string) error {
	if strings.TrimSpace(value) == "" {
		return errEmailRequired
	}
	if !emailPattern.MatchString(value) {
		return errInvalidEmailAddress
	}
	return nil
}

func validateCustomerCount(value int) error {
	for _, valid := range validCustomerCounts {
		if value == valid {
			return nil
		}
	}
	return errInvalidCustomerCount
}
