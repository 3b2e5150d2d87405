package figma

// FileResponse represents the complete response from the Figma file API endpoint.
// It contains the file metadata, document structure and the local styles map
// (style node ID -> style metadata).
type FileResponse struct {
	Name          string           `json:"name"`
	LastModified  string           `json:"lastModified"`
	ThumbnailURL  string           `json:"thumbnailUrl"`
	Version       string           `json:"version"`
	Document      Node             `json:"document"`
	Styles        map[string]Style `json:"styles"`
	SchemaVersion int              `json:"schemaVersion"`
}

// NodesResponse represents the response from the Figma nodes API endpoint when fetching specific nodes.
// It contains file metadata and a map of node IDs to their corresponding NodeData.
// Node IDs that do not exist map to a null entry.
type NodesResponse struct {
	Name         string               `json:"name"`
	LastModified string               `json:"lastModified"`
	Version      string               `json:"version"`
	Nodes        map[string]*NodeData `json:"nodes"`
}

// NodeData wraps a node with its document structure and the styles it references.
type NodeData struct {
	Document Node             `json:"document"`
	Styles   map[string]Style `json:"styles,omitempty"`
}

// ImagesResponse is returned by the render API: node ID -> temporary image URL.
// A null URL means the node could not be rendered.
type ImagesResponse struct {
	Err    string            `json:"err"`
	Images map[string]string `json:"images"`
}

// User is the authenticated account returned by the /me endpoint.
type User struct {
	ID     string `json:"id"`
	Handle string `json:"handle"`
	Email  string `json:"email"`
}

// Style represents a published Figma style with its basic properties.
// StyleType is FILL, TEXT, EFFECT or GRID.
type Style struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StyleType   string `json:"styleType"`
}

// Node represents a single element in the Figma document tree hierarchy.
// Padding fields are omitted by the API when unset, so they are pointers.
type Node struct {
	ID                  string                       `json:"id"`
	Name                string                       `json:"name"`
	Type                string                       `json:"type"`
	Children            []Node                       `json:"children,omitempty"`
	Fills               []Paint                      `json:"fills,omitempty"`
	Style               *TypeStyle                   `json:"style,omitempty"`
	AbsoluteBoundingBox *Rectangle                   `json:"absoluteBoundingBox,omitempty"`
	LayoutMode          string                       `json:"layoutMode,omitempty"`
	PaddingLeft         *float64                     `json:"paddingLeft,omitempty"`
	PaddingRight        *float64                     `json:"paddingRight,omitempty"`
	PaddingTop          *float64                     `json:"paddingTop,omitempty"`
	PaddingBottom       *float64                     `json:"paddingBottom,omitempty"`
	SharedPluginData    map[string]map[string]string `json:"sharedPluginData,omitempty"`
}

// Color represents an RGBA color with float values ranging from 0 to 1.
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// Paint represents a fill applied to a Figma node. Opacity is omitted by the API
// when it is 1.
type Paint struct {
	Type    string   `json:"type"`
	Opacity *float64 `json:"opacity,omitempty"`
	Color   *Color   `json:"color,omitempty"`
}

// TypeStyle represents text styling properties from Figma.
// LineHeightUnit is PIXELS, FONT_SIZE_% or INTRINSIC_%; LetterSpacing is in pixels.
type TypeStyle struct {
	FontFamily                string  `json:"fontFamily"`
	FontPostScriptName        string  `json:"fontPostScriptName"`
	FontStyle                 string  `json:"fontStyle"`
	FontWeight                float64 `json:"fontWeight"`
	Italic                    bool    `json:"italic"`
	FontSize                  float64 `json:"fontSize"`
	LineHeightPx              float64 `json:"lineHeightPx"`
	LineHeightPercentFontSize float64 `json:"lineHeightPercentFontSize"`
	LineHeightUnit            string  `json:"lineHeightUnit"`
	LetterSpacing             float64 `json:"letterSpacing"`
}

// Rectangle represents a bounding box with position (X, Y) and dimensions (Width, Height).
type Rectangle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
