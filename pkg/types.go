package pkg

import (
	"time"
)

// Sender identifies which side of the conversation produced a message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Kind tags a message with the structured payload it carries. Messages with
// an empty Kind are plain text turns.
type Kind string

const (
	KindSearchResult         Kind = "search-result"
	KindSearchResults        Kind = "search-results"
	KindPurchaseConfirmation Kind = "purchase-confirmation"
	KindPurchaseSuccess      Kind = "purchase-success"
	KindFundingRequired      Kind = "funding-required"
	KindOptionalFunding      Kind = "optional-funding"
	KindImageProduct         Kind = "image-product"
	KindURLProduct           Kind = "url-product"
	KindCollectName          Kind = "collect-name"
	KindCollectAddress       Kind = "collect-address"
	KindImage                Kind = "image"
)

// Message is a single turn in the conversation log. The log is append-only:
// once emitted a message is never mutated or removed. DelayMS is a render
// hint for the consuming view (how long the typing indicator should show
// before this message appears); append order is the visible order.
type Message struct {
	ID        string    `json:"id"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Kind      Kind      `json:"kind,omitempty"`
	Payload   any       `json:"payload,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	DelayMS   int64     `json:"delay_ms,omitempty"`
}

// Item is a priced, displayable product offer: the unit of search results,
// purchase intents and recognized products.
type Item struct {
	Title            string `json:"title"`
	Price            int    `json:"price"`
	OriginalPrice    int    `json:"original_price,omitempty"` // pre-coupon price ("was $X")
	Shipping         int    `json:"shipping"`
	Brand            string `json:"brand,omitempty"`
	Category         string `json:"category,omitempty"`
	Availability     string `json:"availability,omitempty"`
	Authenticity     string `json:"authenticity,omitempty"`
	Description      string `json:"description,omitempty"`
	Image            string `json:"image,omitempty"`
	DeliveryDate     string `json:"delivery_date,omitempty"`
	IsUsed           bool   `json:"is_used,omitempty"`
	CouponApplied    bool   `json:"coupon_applied,omitempty"`
	CouponPercentage int    `json:"coupon_percentage,omitempty"`
	HasUsedOptions   bool   `json:"has_used_options,omitempty"`
	UsedOptionsCount int    `json:"used_options_count,omitempty"`
	SecondHand       bool   `json:"second_hand,omitempty"`
	Condition        string `json:"condition,omitempty"`
	Seller           string `json:"seller,omitempty"`
	Location         string `json:"location,omitempty"`
	Confidence       int    `json:"confidence,omitempty"` // image recognition only
	URL              string `json:"url,omitempty"`
}

// SearchResultsPayload bundles a multi-result search. The first result is
// the primary recommendation.
type SearchResultsPayload struct {
	Results []Item `json:"results"`
}

// PurchaseConfirmationPayload asks the user to place an order.
type PurchaseConfirmationPayload struct {
	Item             Item   `json:"item"`
	Total            int    `json:"total"`
	Name             string `json:"name"`
	Address          string `json:"address"`
	IsRepeatCustomer bool   `json:"is_repeat_customer"`
}

// PurchaseSuccessPayload reports a completed order.
type PurchaseSuccessPayload struct {
	Item             Item `json:"item"`
	CouponPercentage int  `json:"coupon_percentage,omitempty"`
}

// FundingRequiredPayload asks the user to top up before an order can complete.
type FundingRequiredPayload struct {
	Item           Item `json:"item"`
	Total          int  `json:"total"`
	CurrentBalance int  `json:"current_balance"`
	RequiredAmount int  `json:"required_amount"`
}

// OptionalFundingPayload offers a voluntary top-up after a purchase.
type OptionalFundingPayload struct {
	WalletAddress string `json:"wallet_address"`
}

// ImageProductPayload carries the product recognized from an uploaded image.
type ImageProductPayload struct {
	Product         Item   `json:"product"`
	OriginalImage   string `json:"original_image,omitempty"`
	OriginalMessage string `json:"original_message,omitempty"`
}

// URLProductPayload carries the product derived from a pasted link.
type URLProductPayload struct {
	Product         Item   `json:"product"`
	OriginalURL     string `json:"original_url"`
	OriginalMessage string `json:"original_message,omitempty"`
}

// ImagePayload is attached to the user's own image-upload turn.
type ImagePayload struct {
	ImageRef string `json:"image_ref"`
}

// PurchaseRecord is one entry of a persona's purchase history. Display-only
// seed data; the live session never reconciles it with confirmed orders.
type PurchaseRecord struct {
	Item  string `json:"item"`
	Date  string `json:"date"`
	Price int    `json:"price"`
}

// Order is the data a confirmation prompt hands back when the user places
// the order.
type Order struct {
	Item    Item   `json:"item"`
	Total   int    `json:"total"`
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
}
