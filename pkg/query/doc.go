// Package query models the query results a dashboard host hands to a
// visualization: ordered field descriptors and rows of {value, rendered}
// cells.
//
// # Field order
//
// Fields are consumed positionally. [Fields.Ordered] lists dimensions
// followed by measures; index 0 is the bubble label and indices 1 to 3 are
// the X, Y and size measures.
//
// # Coercion
//
// Cell values may be numbers, numeric strings, booleans, null, or anything
// else. [Number] converts them the way the chart needs: anything that is not
// a finite number becomes 0.
//
// # Documents
//
// [ReadJSON] decodes a query document, the on-disk form used by the CLI and
// the HTTP API:
//
//	{
//	  "fields": {
//	    "dimensions": [{"name": "stores.name", "label": "Store"}],
//	    "measures":   [{"name": "orders.discounts"}, ...]
//	  },
//	  "data": [
//	    {"stores.name": {"value": "Berlin"}, "orders.discounts": {"value": 120, "rendered": "120"}}
//	  ]
//	}
package query
