/*
Copyright © 2026 the nicam authors.
This file is part of nicam.

nicam is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

nicam is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with nicam.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package nicam decodes grid geometry and field data produced by
// NICAM-style icosahedral atmospheric models. It reconstructs cell-center
// and cell-polygon coordinates on the sphere and provides readers for the
// legacy per-region and panda per-process output formats.
package nicam
