//    HypatiaGoServer
//    Copyright: E Ruthven 2024-26
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

//
// THE BUILT-IN SAMPLE CORPORA
//
// "literary" feeds the word-embedding exercise; "newsgroups" feeds the topic models;
// the texts are public domain; the posts are pastiche
//

// sampledocuments - the documents installed when no corpus directory was given
func sampledocuments() []DbDocument {
	type rawdoc struct {
		corpus string
		docid  string
		text   string
	}

	rr := []rawdoc{
		{CORPUSLITERARY, "melville-moby_dick", MOBYDICK},
		{CORPUSLITERARY, "austen-pride_and_prejudice", PRIDEANDPREJUDICE},
		{CORPUSLITERARY, "dickens-two_cities", TWOCITIES},
		{CORPUSLITERARY, "shelley-frankenstein", FRANKENSTEIN},
		{CORPUSNEWS, "hockey-0001", NGHOCKEY1},
		{CORPUSNEWS, "hockey-0002", NGHOCKEY2},
		{CORPUSNEWS, "space-0001", NGSPACE1},
		{CORPUSNEWS, "space-0002", NGSPACE2},
		{CORPUSNEWS, "autos-0001", NGAUTOS1},
		{CORPUSNEWS, "autos-0002", NGAUTOS2},
		{CORPUSNEWS, "med-0001", NGMED1},
		{CORPUSNEWS, "med-0002", NGMED2},
		{CORPUSNEWS, "graphics-0001", NGGRAPHICS1},
		{CORPUSNEWS, "graphics-0002", NGGRAPHICS2},
	}

	var docs []DbDocument
	for _, r := range rr {
		docs = append(docs, documentfromtext(r.corpus, r.docid, r.text)...)
	}
	return docs
}

const MOBYDICK = `Moby-Dick; or, The Whale (Chapter 1: Loomings)
Call me Ishmael. Some years ago, never mind how long precisely, having little or no money in my purse,
and nothing particular to interest me on shore, I thought I would sail about a little and see the watery part of the world.
It is a way I have of driving off the spleen and regulating the circulation.
Whenever I find myself growing grim about the mouth; whenever it is a damp, drizzly November in my soul;
whenever I find myself involuntarily pausing before coffin warehouses, and bringing up the rear of every funeral I meet;
and especially whenever my hypos get such an upper hand of me, that it requires a strong moral principle
to prevent me from deliberately stepping into the street, and methodically knocking people's hats off,
then, I account it high time to get to sea as soon as I can.
This is my substitute for pistol and ball.
With a philosophical flourish Cato throws himself upon his sword; I quietly take to the ship.
There is nothing surprising in this. If they but knew it, almost all men in their degree,
some time or other, cherish very nearly the same feelings towards the ocean with me.
There now is your insular city of the Manhattoes, belted round by wharves as Indian isles by coral reefs;
commerce surrounds it with her surf. Right and left, the streets take you waterward.
Its extreme downtown is the battery, where that noble mole is washed by waves, and cooled by breezes,
which a few hours previous were out of sight of land. Look at the crowds of water-gazers there.
Circumambulate the city of a dreamy Sabbath afternoon. What do you see?
Posted like silent sentinels all around the town, stand thousands upon thousands of mortal men fixed in ocean reveries.
Some leaning against the spiles; some seated upon the pier-heads; some looking over the bulwarks of ships from China;
some high aloft in the rigging, as if striving to get a still better seaward peep.
But these are all landsmen; of week days pent up in lath and plaster, tied to counters, nailed to benches, clinched to desks.
How then is this? Are the green fields gone? What do they here?
But look! here come more crowds, pacing straight for the water, and seemingly bound for a dive.
Strange! Nothing will content them but the extremest limit of the land.
No. They must get just as nigh the water as they possibly can without falling in.
And there they stand, miles of them, leagues. Inlanders all, they come from lanes and alleys, streets and avenues.
Yet here they all unite. Tell me, does the magnetic virtue of the needles of the compasses of all those ships attract them thither?`

const PRIDEANDPREJUDICE = `Pride and Prejudice (Chapter 1)
It is a truth universally acknowledged, that a single man in possession of a good fortune, must be in want of a wife.
However little known the feelings or views of such a man may be on his first entering a neighbourhood,
this truth is so well fixed in the minds of the surrounding families,
that he is considered as the rightful property of some one or other of their daughters.
"My dear Mr. Bennet," said his lady to him one day, "have you heard that Netherfield Park is let at last?"
Mr. Bennet replied that he had not.
"But it is," returned she; "for Mrs. Long has just been here, and she told me all about it."
Mr. Bennet made no answer.
"Do you not want to know who has taken it?" cried his wife impatiently.
"You want to tell me, and I have no objection to hearing it."
This was invitation enough.
"Why, my dear, you must know, Mrs. Long says that Netherfield is taken by a young man of large fortune from the north of England;
that he came down on Monday in a chaise and four to see the place, and was so much delighted with it,
that he agreed with Mr. Morris immediately; that he is to take possession before Michaelmas,
and some of his servants are to be in the house by the end of next week."
"What is his name?"
"Bingley."
"Is he married or single?"
"Oh! Single, my dear, to be sure! A single man of large fortune; four or five thousand a year. What a fine thing for our girls!"
"How so? How can it affect them?"
"My dear Mr. Bennet," replied his wife, "how can you be so tiresome! You must know that I am thinking of his marrying one of them."
"Is that his design in settling here?"
"Design! Nonsense, how can you talk so! But it is very likely that he may fall in love with one of them,
and therefore you must visit him as soon as he comes."`

const TWOCITIES = `A Tale of Two Cities (Book the First: Recalled to Life)
It was the best of times, it was the worst of times, it was the age of wisdom, it was the age of foolishness,
it was the epoch of belief, it was the epoch of incredulity, it was the season of Light, it was the season of Darkness,
it was the spring of hope, it was the winter of despair, we had everything before us, we had nothing before us,
we were all going direct to Heaven, we were all going direct the other way,
in short, the period was so far like the present period, that some of its noisiest authorities
insisted on its being received, for good or for evil, in the superlative degree of comparison only.
There were a king with a large jaw and a queen with a plain face, on the throne of England;
there were a king with a large jaw and a queen with a fair face, on the throne of France.
In both countries it was clearer than crystal to the lords of the State preserves of loaves and fishes,
that things in general were settled for ever.
It was the year of Our Lord one thousand seven hundred and seventy-five.
Spiritual revelations were conceded to England at that favoured period, as at this.
France, less favoured on the whole as to matters spiritual than her sister of the shield and trident,
rolled with exceeding smoothness down hill, making paper money and spending it.
Under the guidance of her Christian pastors, she entertained herself, besides, with such humane achievements
as sentencing a youth to have his hands cut off, his tongue torn out with pincers,
and his body burned alive, because he had not kneeled down in the rain to do honour
to a dirty procession of monks which passed within his view, at a distance of some fifty or sixty yards.
It is likely enough that, rooted in the woods of France and Norway, there were growing trees,
when that sufferer was put to death, already marked by the Woodman, Fate,
to come down and be sawn into boards, to make a certain movable framework with a sack and a knife in it, terrible in history.`

const FRANKENSTEIN = `Frankenstein; or, The Modern Prometheus (Letter 1)
You will rejoice to hear that no disaster has accompanied the commencement of an enterprise
which you have regarded with such evil forebodings.
I arrived here yesterday, and my first task is to assure my dear sister of my welfare
and increasing confidence in the success of my undertaking.
I am already far north of London, and as I walk in the streets of Petersburgh,
I feel a cold northern breeze play upon my cheeks, which braces my nerves and fills me with delight.
Do you understand this feeling?
This breeze, which has travelled from the regions towards which I am advancing,
gives me a foretaste of those icy climes.
Inspirited by this wind of promise, my daydreams become more fervent and vivid.
I try in vain to be persuaded that the pole is the seat of frost and desolation;
it ever presents itself to my imagination as the region of beauty and delight.
There, Margaret, the sun is for ever visible, its broad disk just skirting the horizon
and diffusing a perpetual splendour.
There, for with your leave, my sister, I will put some trust in preceding navigators,
there snow and frost are banished; and, sailing over a calm sea,
we may be wafted to a land surpassing in wonders and in beauty every region hitherto discovered on the habitable globe.
Its productions and features may be without example, as the phenomena of the heavenly bodies
undoubtedly are in those undiscovered solitudes.
What may not be expected in a country of eternal light?
I may there discover the wondrous power which attracts the needle
and may regulate a thousand celestial observations
that require only this voyage to render their seeming eccentricities consistent for ever.`

//
// pastiche newsgroup posts: short, header-laden, and each hewing to one topic
//

const NGHOCKEY1 = `From: kolster@ux1.example.edu (Karl Olster)
Subject: Re: Playoff predictions round two
Organization: University of Example
Lines: 12
In article <1993Apr12.1122@ux1.example.edu> dmars@ux1.example.edu writes:
> The Bruins will sweep if their goalie stays healthy.
I disagree about the sweep. The Sabres have the better power play
and their penalty kill shut down the top line all season.
The goalie matchup favors Boston but the defense pairings do not.
If the series goes past five games the deeper forward lines win it.
My prediction: six games, and the winner takes the conference final too.
The playoff schedule this year rewards teams with two strong goalies.
Hockey in April is a war of attrition and the bench decides it.
Season scoring stats mean very little once the ice gets chopped up.
Watch the faceoff numbers in game one; they will tell the story.
Karl`

const NGHOCKEY2 = `From: tremblay@cs.example.ca (Luc Tremblay)
Subject: Goalie equipment rules and save percentage
Organization: Example Institute, Hockey Analytics Lab
Lines: 11
The league wants more goals, so the talk is of shrinking goalie pads again.
Save percentage has climbed for ten straight seasons and the goalies
are better coached, not just better padded.
Butterfly technique closes the bottom of the net that stand-up goalies left open.
A rule change on pad width will buy maybe half a goal per game.
The real change would be calling obstruction in the neutral zone,
which would raise shot totals and scoring chances for every team.
Defense wins championships, the coaches say, and they coach accordingly.
Until the trap is punished, goal scoring stays flat and the goalie stays king.
Look at the playoff scoring rates: identical story every spring.
Luc`

const NGSPACE1 = `From: aferris@nasa-gw.example.gov (Alan Ferris)
Subject: Shuttle launch window and orbital mechanics
Organization: Example Space Flight Center
Lines: 12
The launch window question keeps coming up, so here is the short version.
A rendezvous mission must launch when the orbital plane of the target
passes over the launch pad, which happens twice a day.
Only one of the two opportunities is usable for the shuttle
because of the inclination limits and the abort constraints.
The window is about five minutes wide for a space station rendezvous.
Miss it and you wait a day while the Earth rotates you back under the orbit.
Fuel margins set the width: launching early or late costs propellant
to steer the ascent trajectory back into the target plane.
Interplanetary windows are the same idea stretched across the solar system;
a Mars departure opportunity opens about every 26 months.
Alan`

const NGSPACE2 = `From: mdevi@astro.example.edu (Meera Devi)
Subject: Re: Why fund unmanned probes
Organization: Example University Astronomy Dept
Lines: 12
In article <1993Apr19.0930@astro.example.edu> jkl@astro.example.edu writes:
> Robotic missions return no inspiration, only data.
The data is the inspiration. Voyager rewrote the textbooks for four planets
on a budget smaller than a single shuttle flight.
An orbiter can carry a spectrometer to Jupiter and spend years mapping
the moons; no crewed mission will do that in our lifetime.
Solar panels and a radio dish do not need life support or a return vehicle.
The probe does not get bored during a seven year cruise to Saturn.
Crewed flight has its place in low Earth orbit for now,
but the outer solar system belongs to the robots for decades to come.
Send the astronauts to the Moon again once the launch costs fall;
send the probes everywhere else, starting yesterday.
Meera`

const NGAUTOS1 = `From: gbaker@engr.example.com (Greg Baker)
Subject: Re: Manual vs automatic transmission for commuting
Organization: Example Engineering Inc.
Lines: 11
In article <1993Apr05.1515@engr.example.com> pmw@engr.example.com writes:
> Nobody needs a clutch pedal in stop-and-go traffic.
A manual transmission still wins on price, weight, and repair cost.
The automatic in my old sedan needed a rebuild at 90k miles
that cost more than the car was worth.
A clutch job is cheaper and the gearbox itself almost never dies.
Fuel economy favors the stick too, by two or three miles per gallon,
because the torque converter wastes power at every stoplight.
In traffic the clutch leg gets tired, granted.
But the driver controls the engine speed, and engine braking
down a mountain grade will save your brake pads and maybe your life.
Greg`

const NGAUTOS2 = `From: ssandoval@auto.example.com (Sofia Sandoval)
Subject: Radar detectors and highway speed enforcement
Organization: Example Motor Club
Lines: 11
The radar detector thread needs some facts about how the radar gun works.
The gun measures the Doppler shift of the reflected beam,
so it reads the fastest strong reflector in the cone, not always your car.
A truck in the next lane can earn you the ticket.
Instant-on radar defeats the detector because the beam is off
until the officer has your car in view; the warning comes too late.
Laser units are tighter still: the spot is a meter wide at range.
The cheapest way to avoid a speeding ticket is the speedometer.
Good brakes, good tires, and an honest engine beat any gadget.
Drive the speed of the traffic around you and watch the mirrors.
Sofia`

const NGMED1 = `From: drchen@med.example.edu (Lisa Chen)
Subject: Re: Antibiotics for a head cold
Organization: Example Medical School
Lines: 11
In article <1993Apr22.0845@med.example.edu> rtf@med.example.edu writes:
> My doctor refused to prescribe antibiotics for my cold. Bad doctor?
Good doctor. A cold is a viral infection and antibiotics kill bacteria.
Taking them for a virus does nothing for the symptoms
and breeds resistant bacteria for the whole community.
The cough and congestion peak around day four and clear in ten.
Fluids, rest, and a decongestant are the honest treatment.
See the doctor again if a fever returns after day five,
because a secondary bacterial sinus infection or pneumonia can follow a cold,
and that is the case where an antibiotic earns its keep.
The immune system does the cure; the patient does the waiting.
Lisa Chen, MD`

const NGMED2 = `From: hkarimi@health.example.org (Hamid Karimi)
Subject: Dietary fat, cholesterol, and the heart studies
Organization: Example Public Health Center
Lines: 11
The cholesterol thread keeps citing single studies, so here is the larger picture.
Blood cholesterol correlates with heart disease risk across populations,
and saturated fat in the diet raises blood cholesterol in controlled trials.
Neither fact alone settles what any one patient should eat.
The trials that lowered cholesterol with diet showed modest benefit,
larger for patients who already had heart disease.
Exercise raises the protective lipoprotein fraction reliably.
Smoking swamps every dietary effect in the risk tables; quit first.
A reasonable diet, a daily walk, and no cigarettes
beat any supplement on the market, and the evidence is not close.
Hamid`

const NGGRAPHICS1 = `From: pnowak@gfx.example.com (Piotr Nowak)
Subject: Re: Fast polygon fill algorithm wanted
Organization: Example Graphics Systems
Lines: 12
In article <1993Apr15.1750@gfx.example.com> ad@gfx.example.com writes:
> I need to fill convex polygons at interactive rates on a 486.
Scanline conversion is what you want, not flood fill.
Sort the edges, walk the scanlines, and interpolate the x intercepts;
a convex polygon gives you exactly one span per line.
Fixed point arithmetic for the edge slopes avoids the float unit entirely.
Write the spans with a word-aligned memset and the fill rate
is limited by the bus, not the algorithm.
For texture mapping, interpolate u and v along the same spans.
The graphics FAQ has pseudocode for the edge table version
that handles concave polygons when you eventually need them.
Piotr`

const NGGRAPHICS2 = `From: efogel@cad.example.com (Erin Fogel)
Subject: Image file formats and 24-bit color conversion
Organization: Example CAD Software
Lines: 11
Choosing an image format for renders keeps confusing new users, so:
TIFF stores 24-bit color losslessly and every paint program reads it,
but the files are large and the format has too many variants.
GIF is 8-bit only; quantizing a render to 256 colors needs dithering
and a good palette algorithm or the sky turns to bands.
JPEG compresses 24-bit images ten to one with artifacts
you will not see in a photograph but will see in line art.
For archival masters keep TIFF or PPM; ship JPEG for viewing.
Gamma correction belongs in the conversion step, not the renderer;
store linear values and correct for the monitor at display time.
Erin`
