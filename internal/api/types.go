package api

// ErrorResponse is a generic JSON error wrapper.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ProductCreateRequest is the payload for creating a product.
type ProductCreateRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	Picture     string `json:"picture,omitempty"`
}

// ProductUpdateRequest replaces a product's editable fields.
type ProductUpdateRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	Picture     string `json:"picture,omitempty"`
}

// ProductResponse is the JSON shape of one product.
type ProductResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	Picture     string `json:"picture,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// CategoriesResponse carries the category set and its revision. Clients echo
// the revision back on writes.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
	Revision   int64    `json:"revision"`
}

// CategoryAddRequest adds one category to the set.
type CategoryAddRequest struct {
	Name     string `json:"name"`
	Revision int64  `json:"revision"`
}

// CategoryRenameRequest renames one category; products move with it.
type CategoryRenameRequest struct {
	NewName  string `json:"new_name"`
	Revision int64  `json:"revision"`
}

// CategoryMutationResponse is returned by category writes.
type CategoryMutationResponse struct {
	Categories []string `json:"categories"`
	Revision   int64    `json:"revision"`
	Reassigned int      `json:"reassigned,omitempty"`
	Remaining  int      `json:"remaining,omitempty"`
}

// BlogCreateRequest is the payload for creating a blog post.
type BlogCreateRequest struct {
	Title   string `json:"title"`
	Author  string `json:"author"`
	Content string `json:"content"`
	Status  string `json:"status,omitempty"`
}

// BlogUpdateRequest replaces a blog post's editable fields.
type BlogUpdateRequest struct {
	Title   string `json:"title"`
	Author  string `json:"author"`
	Content string `json:"content"`
	Status  string `json:"status,omitempty"`
}

// BlogResponse is the JSON shape of one blog post. Excerpt is derived from
// the content on the way out; it is never stored.
type BlogResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Content     string `json:"content,omitempty"`
	Excerpt     string `json:"excerpt,omitempty"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
	DisplayDate string `json:"display_date,omitempty"`
}

// UploadResponse describes one stored image.
type UploadResponse struct {
	Key       string `json:"key"`
	URL       string `json:"url"`
	SizeBytes int64  `json:"size_bytes"`
}

// CatalogResponse bundles the storefront read model: all products plus the
// category set, fetched in one request. Products and categories load
// independently; when one side is down the other still serves and the
// failure is named in Warnings.
type CatalogResponse struct {
	Products   []ProductResponse `json:"products"`
	Categories []string          `json:"categories"`
	Revision   int64             `json:"revision"`
	Warnings   []string          `json:"warnings,omitempty"`
}

// InfoResponse reports server metadata and collection counts.
type InfoResponse struct {
	Version    string   `json:"version"`
	Products   int      `json:"products"`
	Blogs      int      `json:"blogs"`
	Categories int      `json:"categories"`
	Warnings   []string `json:"warnings,omitempty"`
}
