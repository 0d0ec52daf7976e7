// Package normalize converts a parsed IDML document into the intermediate
// ast model.
//
// Each page (or spread, in spread mode) becomes one ast.Section. Text
// frames are deduplicated, filtered to the heads of their story chains and
// then either merged into one spanning table (see package gridmerge) or
// emitted as standalone text frame blocks. Placed images and vector
// artwork become figures; the pixels come from the ImageSource and
// ShapeRenderer collaborators supplied in the Config.
//
// Problems with single elements (a missing story, an unreadable image, an
// unknown character style) never abort the conversion. They are recorded
// as warnings and the element is skipped or replaced by a stand-in.
package normalize
